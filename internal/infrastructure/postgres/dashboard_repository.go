package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados read-only para el tablero del panel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetStats calcula las métricas en una sola pasada con FILTER.
func (r *DashboardRepo) GetStats(ctx context.Context, currentMonth string) (*repository.DashboardStats, error) {
	var stats repository.DashboardStats

	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM customers`).Scan(&stats.TotalCustomers, &stats.ActiveCustomers)
	if err != nil {
		return nil, fmt.Errorf("stats de clientes: %w", err)
	}

	err = r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM packages WHERE status = 'ACTIVE'`).Scan(&stats.TotalPackages)
	if err != nil {
		return nil, fmt.Errorf("stats de planes: %w", err)
	}

	err = r.q.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE paid),
		       COUNT(*) FILTER (WHERE NOT paid),
		       COALESCE(SUM(amount) FILTER (WHERE paid), 0),
		       COUNT(*) FILTER (WHERE paid AND billing_month = $1)
		FROM payments`, currentMonth).Scan(
		&stats.PaidPayments, &stats.PendingPayments,
		&stats.CollectedAmount, &stats.CurrentMonthPaid,
	)
	if err != nil {
		return nil, fmt.Errorf("stats de pagos: %w", err)
	}
	return &stats, nil
}
