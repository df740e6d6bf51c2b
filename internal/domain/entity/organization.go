package entity

import (
	"regexp"
	"time"
)

// Organization representa un tenant del sistema (constructora cliente).
// Es dueña exclusiva de usuarios, proyectos, proveedores, materiales y gastos.
type Organization struct {
	ID        string
	Name      string
	Code      string // 2 letras mayúsculas + 4 dígitos, único global (ej. AB1234)
	Address   string
	ContactNo string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var organizationCodeRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`)

// ValidOrganizationCode informa si el código cumple el formato fijo.
func ValidOrganizationCode(code string) bool {
	return organizationCodeRe.MatchString(code)
}

// DefaultMaterialTypes tipos de material creados al dar de alta una organización.
var DefaultMaterialTypes = []string{
	"Aggregate",
	"Grit",
	"Cement",
	"Steel 8mm",
	"Steel 10mm",
	"Sand",
	"Steel 12mm",
	"Steel 16mm",
	"Steel 20mm",
	"Steel 25mm",
}
