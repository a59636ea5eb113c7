package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

func billableCustomer(id string, price int64) *entity.Customer {
	return &entity.Customer{
		ID:       id,
		Name:     "Cliente " + id,
		Username: "dhk." + id,
		IsActive: true,
		Package: &entity.Package{
			ID:     "pkg-" + id,
			Price:  decimal.NewFromInt(price),
			Status: entity.StatusActive,
		},
		Status: entity.StatusActive,
	}
}

func TestGenerateBills_CreaPlaceholdersParaElegibles(t *testing.T) {
	free := billableCustomer("c3", 800)
	free.IsFree = true
	inactive := billableCustomer("c4", 800)
	inactive.IsActive = false
	zeroPrice := billableCustomer("c5", 0)

	customers := &fakeCustomerRepo{customers: []*entity.Customer{
		billableCustomer("c1", 500),
		billableCustomer("c2", 800),
		free, inactive, zeroPrice,
	}}
	payments := &fakePaymentRepo{}
	uc := NewGenerateBillsUseCase(customers, payments, logger.Nop())

	created, err := uc.Generate(context.Background(), "AUGUST")
	require.NoError(t, err)
	assert.Equal(t, 2, created, "solo c1 y c2 son facturables")
	require.Len(t, payments.bulks, 1, "un solo insert atómico por corrida")

	for _, p := range payments.payments {
		assert.Equal(t, "AUGUST", p.BillingMonth)
		assert.True(t, p.Amount.IsZero())
		assert.False(t, p.Paid)
		assert.Equal(t, entity.MethodOther, p.PaymentMethod)
		assert.Equal(t, "Factura generada automáticamente para AUGUST", p.Note)
	}
	byCustomer := map[string]decimal.Decimal{}
	for _, p := range payments.payments {
		byCustomer[p.CustomerID] = p.BillAmount
	}
	assert.True(t, byCustomer["c1"].Equal(decimal.NewFromInt(500)))
	assert.True(t, byCustomer["c2"].Equal(decimal.NewFromInt(800)))
}

func TestGenerateBills_EsIdempotente(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []*entity.Customer{
		billableCustomer("c1", 500),
		billableCustomer("c2", 800),
	}}
	payments := &fakePaymentRepo{}
	uc := NewGenerateBillsUseCase(customers, payments, logger.Nop())

	first, err := uc.Generate(context.Background(), "AUGUST")
	require.NoError(t, err)
	assert.Equal(t, 2, first)

	second, err := uc.Generate(context.Background(), "AUGUST")
	require.NoError(t, err)
	assert.Equal(t, 0, second, "la segunda corrida no debe crear filas")
	assert.Len(t, payments.payments, 2)
}

func TestGenerateBills_SaltaClientesYaFacturados(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []*entity.Customer{
		billableCustomer("c1", 500),
		billableCustomer("c2", 800),
	}}
	payments := &fakePaymentRepo{payments: []*entity.Payment{{
		ID:           "pay-1",
		CustomerID:   "c1",
		BillingMonth: "AUGUST",
		Paid:         true, // cobro manual previo a la corrida
	}}}
	uc := NewGenerateBillsUseCase(customers, payments, logger.Nop())

	created, err := uc.Generate(context.Background(), "AUGUST")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Len(t, payments.payments, 2)
	assert.Equal(t, "c2", payments.payments[1].CustomerID)
}

func TestGenerateBills_PeriodoVacioUsaMesEnCurso(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []*entity.Customer{billableCustomer("c1", 500)}}
	payments := &fakePaymentRepo{}
	uc := NewGenerateBillsUseCase(customers, payments, logger.Nop())

	created, err := uc.Generate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, entity.CurrentBillingMonth(time.Now()), payments.payments[0].BillingMonth)
}

func TestGenerateBills_PeriodoInvalidoRechazado(t *testing.T) {
	uc := NewGenerateBillsUseCase(&fakeCustomerRepo{}, &fakePaymentRepo{}, logger.Nop())

	_, err := uc.Generate(context.Background(), "2026-08")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
