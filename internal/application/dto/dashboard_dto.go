package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas agregadas del negocio para el tablero principal.
type DashboardResponse struct {
	Customers struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"customers"`
	Packages struct {
		Total int `json:"total"`
	} `json:"packages"`
	Payments struct {
		TotalPaid         int             `json:"total_paid"`
		Pending           int             `json:"pending"`
		TotalAmount       decimal.Decimal `json:"total_amount"`
		CurrentMonthCount int             `json:"current_month_count"`
	} `json:"payments"`
	CurrentMonth string `json:"current_month"`
}
