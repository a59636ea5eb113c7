package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

func buildPaymentUC(customers *fakeCustomerRepo, payments *fakePaymentRepo, toggler *fakeToggler) *PaymentUseCase {
	return NewPaymentUseCase(payments, customers, toggler, logger.Nop())
}

func pendingPlaceholder(customerID string, billAmount int64) *entity.Payment {
	return &entity.Payment{
		ID:           "pay-1",
		CustomerID:   customerID,
		BillAmount:   decimal.NewFromInt(billAmount),
		Amount:       decimal.Zero,
		BillingMonth: "AUGUST",
		Paid:         false,
	}
}

func TestUpdatePago_LiquidacionActivaYReconecta(t *testing.T) {
	customer := testCustomer(800, false)
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	payments := &fakePaymentRepo{payments: []*entity.Payment{pendingPlaceholder(customer.ID, 800)}}
	toggler := &fakeToggler{ok: true, msg: "suscriptor habilitado"}
	uc := buildPaymentUC(customers, payments, toggler)

	amount := decimal.NewFromInt(800)
	resp, err := uc.Update(context.Background(), "pay-1", dto.UpdatePaymentRequest{Amount: &amount}, "user-1")
	require.NoError(t, err)
	assert.True(t, resp.Paid, "monto == bill_amount debe liquidar")

	require.Len(t, customers.setActiveCalls, 1)
	assert.Equal(t, setActiveCall{ID: customer.ID, Active: true}, customers.setActiveCalls[0])
	require.Len(t, toggler.calls, 1, "la edición que liquida también reconecta en el router")
	assert.Equal(t, toggleCall{Username: customer.Username, Enabled: true}, toggler.calls[0])
}

func TestUpdatePago_FallaDelRouterNoRevierteLaEdicion(t *testing.T) {
	customer := testCustomer(800, false)
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	payments := &fakePaymentRepo{payments: []*entity.Payment{pendingPlaceholder(customer.ID, 800)}}
	toggler := &fakeToggler{ok: false, msg: "router inalcanzable"}
	uc := buildPaymentUC(customers, payments, toggler)

	amount := decimal.NewFromInt(800)
	resp, err := uc.Update(context.Background(), "pay-1", dto.UpdatePaymentRequest{Amount: &amount}, "user-1")
	require.NoError(t, err, "la falla del router no debe revertir la edición")
	assert.True(t, resp.Paid)
	require.Len(t, payments.updated, 1)
	require.Len(t, customers.setActiveCalls, 1, "is_active queda en true aunque el router falle")
}

func TestUpdatePago_ClienteActivoNoTocaElRouter(t *testing.T) {
	customer := testCustomer(800, true)
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	payments := &fakePaymentRepo{payments: []*entity.Payment{pendingPlaceholder(customer.ID, 800)}}
	toggler := &fakeToggler{ok: true}
	uc := buildPaymentUC(customers, payments, toggler)

	amount := decimal.NewFromInt(800)
	_, err := uc.Update(context.Background(), "pay-1", dto.UpdatePaymentRequest{Amount: &amount}, "user-1")
	require.NoError(t, err)
	assert.Empty(t, customers.setActiveCalls)
	assert.Empty(t, toggler.calls, "cliente ya activo: sin toggle")
}

func TestUpdatePago_MontoParcialNoActiva(t *testing.T) {
	customer := testCustomer(800, false)
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	payments := &fakePaymentRepo{payments: []*entity.Payment{pendingPlaceholder(customer.ID, 800)}}
	toggler := &fakeToggler{ok: true}
	uc := buildPaymentUC(customers, payments, toggler)

	amount := decimal.NewFromInt(300)
	resp, err := uc.Update(context.Background(), "pay-1", dto.UpdatePaymentRequest{Amount: &amount}, "user-1")
	require.NoError(t, err)
	assert.False(t, resp.Paid)
	assert.Empty(t, toggler.calls)
}

func TestUpdatePago_PagoLiquidadoEsInmutable(t *testing.T) {
	customer := testCustomer(800, true)
	settled := pendingPlaceholder(customer.ID, 800)
	settled.Amount = decimal.NewFromInt(800)
	settled.Paid = true
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	payments := &fakePaymentRepo{payments: []*entity.Payment{settled}}
	uc := buildPaymentUC(customers, payments, &fakeToggler{ok: true})

	amount := decimal.NewFromInt(100)
	_, err := uc.Update(context.Background(), "pay-1", dto.UpdatePaymentRequest{Amount: &amount}, "user-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.Empty(t, payments.updated)
}
