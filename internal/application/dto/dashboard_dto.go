package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Los mapas de estado y verificación siempre incluyen sus cuatro claves.
type DashboardSummaryDTO struct {
	TotalCustomers     int            `json:"total_customers"`
	TotalEvents        int            `json:"total_events"`
	ConsentStateCounts map[string]int `json:"consent_state_counts"`
	ChannelCounts      map[string]int `json:"channel_counts"`
	VerificationCounts map[string]int `json:"verification_counts"`
	Rates              RatesDTO       `json:"rates"`
	ChannelOptions     []string       `json:"channel_options"` // opciones del filtro de canal
}

// RatesDTO porcentaje de clientes por estado (0–100, 2 decimales).
type RatesDTO struct {
	Valid   decimal.Decimal `json:"valid"`
	Pending decimal.Decimal `json:"pending"`
	Revoked decimal.Decimal `json:"revoked"`
}
