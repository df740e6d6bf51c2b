package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus estado de una obra.
type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectConfirm   ProjectStatus = "confirm"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
	ProjectStop      ProjectStatus = "stop"
	ProjectLeave     ProjectStatus = "leave"
)

// Valid informa si el estado es uno de los definidos.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPending, ProjectConfirm, ProjectOngoing, ProjectCompleted, ProjectStop, ProjectLeave:
		return true
	}
	return false
}

// Project representa una obra de construcción. ProjectName es único por organización.
type Project struct {
	ID               string
	OrganizationID   string
	ProjectName      string
	Client           string
	ConstructionSite string
	StartDate        time.Time
	EndDate          *time.Time
	Value            decimal.Decimal
	Status           ProjectStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
