package repository

import (
	"context"

	"github.com/jhoicas/netbill-api/internal/domain/entity"
)

// ListPaymentFilter filtros opcionales para el listado de pagos.
type ListPaymentFilter struct {
	Paid          *bool
	BillingMonth  string
	CustomerName  string // coincidencia parcial, case-insensitive
	CustomerPhone string // coincidencia exacta
	CollectedBy   string // coincidencia parcial sobre el nombre del colector
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// BulkCreate inserta pagos placeholder en un solo lote atómico.
	BulkCreate(ctx context.Context, payments []*entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// GetByCustomerAndMonth devuelve el pago único del par (cliente, mes).
	// Si no existe devuelve (nil, nil). Si detecta más de una fila devuelve
	// domain.ErrIntegrityConflict: jamás se resuelve en silencio.
	GetByCustomerAndMonth(ctx context.Context, customerID, billingMonth string) (*entity.Payment, error)
	// CustomerIDsWithMonth devuelve los IDs de cliente que ya tienen pago en el período.
	CustomerIDsWithMonth(ctx context.Context, billingMonth string) (map[string]bool, error)
	List(ctx context.Context, filter ListPaymentFilter, limit, offset int) ([]*entity.Payment, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id string) error
	// RealignBillAmounts reescribe bill_amount de todos los pagos con el precio
	// actual del plan del cliente. Devuelve la cantidad de filas afectadas.
	RealignBillAmounts(ctx context.Context) (int64, error)
}
