package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

func TestToggleStatus_RouterConfirmaYPersiste(t *testing.T) {
	customer := &entity.Customer{ID: "cust-1", Username: "dhk.rahim", IsActive: true}
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	toggler := &fakeToggler{ok: true, msg: "suscriptor deshabilitado en el router"}
	uc := NewStatusToggleUseCase(customers, toggler, logger.Nop())

	msg, err := uc.Toggle(context.Background(), "dhk.rahim", false)
	require.NoError(t, err)
	assert.Equal(t, "suscriptor deshabilitado en el router", msg)
	require.Len(t, toggler.calls, 1)
	assert.Equal(t, toggleCall{Username: "dhk.rahim", Enabled: false}, toggler.calls[0])
	require.Len(t, customers.setActiveCalls, 1)
	assert.Equal(t, setActiveCall{ID: "cust-1", Active: false}, customers.setActiveCalls[0])
}

func TestToggleStatus_FallaDelRouterNoPersiste(t *testing.T) {
	customer := &entity.Customer{ID: "cust-1", Username: "dhk.rahim", IsActive: true}
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	toggler := &fakeToggler{ok: false, msg: "router inalcanzable"}
	uc := NewStatusToggleUseCase(customers, toggler, logger.Nop())

	msg, err := uc.Toggle(context.Background(), "dhk.rahim", false)
	assert.ErrorIs(t, err, domain.ErrRouterUnavailable)
	assert.Equal(t, "router inalcanzable", msg)
	assert.Empty(t, customers.setActiveCalls, "sin confirmación del router no se toca is_active")
	assert.True(t, customer.IsActive)
}

func TestToggleStatus_ClienteInexistente(t *testing.T) {
	toggler := &fakeToggler{ok: true}
	uc := NewStatusToggleUseCase(&fakeCustomerRepo{}, toggler, logger.Nop())

	_, err := uc.Toggle(context.Background(), "no.existe", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, toggler.calls, "no se toca el router sin cliente local")
}

func TestToggleStatus_UsernameVacioRechazado(t *testing.T) {
	uc := NewStatusToggleUseCase(&fakeCustomerRepo{}, &fakeToggler{ok: true}, logger.Nop())

	_, err := uc.Toggle(context.Background(), "", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToggleStatus_EstadoSinCambioNoPersiste(t *testing.T) {
	customer := &entity.Customer{ID: "cust-1", Username: "dhk.rahim", IsActive: true}
	customers := &fakeCustomerRepo{customers: []*entity.Customer{customer}}
	toggler := &fakeToggler{ok: true, msg: "suscriptor habilitado en el router"}
	uc := NewStatusToggleUseCase(customers, toggler, logger.Nop())

	_, err := uc.Toggle(context.Background(), "dhk.rahim", true)
	require.NoError(t, err)
	require.Len(t, toggler.calls, 1, "el router siempre recibe el pedido")
	assert.Empty(t, customers.setActiveCalls, "la bandera local ya estaba en ese valor")
}
