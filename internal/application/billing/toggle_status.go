package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

// StatusToggleUseCase toggle manual de conectividad de un suscriptor.
//
// A diferencia del flip disparado por un pago (que persiste is_active aunque
// el router falle), acá el cambio local SOLO se guarda si el router confirmó:
// un toggle pedido a mano se rechaza de punta a punta ante falla del adapter.
type StatusToggleUseCase struct {
	customerRepo repository.CustomerRepository
	toggler      ConnectivityToggler
	log          *logger.Logger
}

// NewStatusToggleUseCase construye el caso de uso.
func NewStatusToggleUseCase(customerRepo repository.CustomerRepository, toggler ConnectivityToggler, log *logger.Logger) *StatusToggleUseCase {
	return &StatusToggleUseCase{customerRepo: customerRepo, toggler: toggler, log: log}
}

// Toggle busca al cliente por username, aplica el cambio en el router y, solo
// si este confirmó, persiste la bandera is_active local. Devuelve el mensaje
// del router para diagnóstico.
func (uc *StatusToggleUseCase) Toggle(ctx context.Context, username string, isActive bool) (string, error) {
	if username == "" {
		return "", domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return "", domain.ErrNotFound
	}

	ok, msg := uc.toggler.SetSubscriberEnabled(ctx, username, isActive)
	if !ok {
		uc.log.Warn().
			Str("username", username).
			Bool("is_active", isActive).
			Str("reason", msg).
			Msg("toggle manual rechazado: el router no aplicó el cambio")
		return msg, fmt.Errorf("%w: %s", domain.ErrRouterUnavailable, msg)
	}

	if customer.IsActive != isActive {
		if err := uc.customerRepo.SetActive(ctx, customer.ID, isActive); err != nil {
			return msg, fmt.Errorf("persistir is_active: %w", err)
		}
	}
	return msg, nil
}
