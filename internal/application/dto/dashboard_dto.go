package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats; todo restringido a la organización.
type DashboardStatsResponse struct {
	Projects     int             `json:"projects"`
	Vendors      int             `json:"vendors"`
	Materials    int             `json:"materials"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
}
