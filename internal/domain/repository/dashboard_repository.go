package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardStats métricas agregadas para el tablero principal.
type DashboardStats struct {
	TotalCustomers    int
	ActiveCustomers   int
	TotalPackages     int
	PaidPayments      int
	PendingPayments   int
	CollectedAmount   decimal.Decimal // suma de pagos liquidados
	CurrentMonthPaid  int             // pagos liquidados del mes en curso
}

// DashboardRepository consultas read-only de agregados para el dashboard.
type DashboardRepository interface {
	GetStats(ctx context.Context, currentMonth string) (*DashboardStats, error)
}
