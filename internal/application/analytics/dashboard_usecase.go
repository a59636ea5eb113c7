// Package analytics contiene los casos de uso de reportes del negocio y el
// tablero principal del panel.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen de clientes, planes y recaudo.
// No accede directamente a las tablas; delega todo en el repositorio read-only.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary devuelve las métricas agregadas, con el mes en curso como período de referencia.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	currentMonth := entity.CurrentBillingMonth(time.Now())
	stats, err := uc.repo.GetStats(ctx, currentMonth)
	if err != nil {
		return nil, fmt.Errorf("métricas del dashboard: %w", err)
	}
	out := &dto.DashboardResponse{CurrentMonth: currentMonth}
	out.Customers.Total = stats.TotalCustomers
	out.Customers.Active = stats.ActiveCustomers
	out.Packages.Total = stats.TotalPackages
	out.Payments.TotalPaid = stats.PaidPayments
	out.Payments.Pending = stats.PendingPayments
	out.Payments.TotalAmount = stats.CollectedAmount
	out.Payments.CurrentMonthCount = stats.CurrentMonthPaid
	return out, nil
}
