package billing

import (
	"context"

	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

// ConnectivityToggler define el puerto de salida hacia el router: habilita o
// deshabilita la sesión de red de un suscriptor. Una sola tentativa por llamada;
// toda falla (transporte, HTTP != 200, suscriptor inexistente) se devuelve como
// (false, motivo) en vez de error. El caller decide si revierte su estado local.
type ConnectivityToggler interface {
	SetSubscriberEnabled(ctx context.Context, username string, enabled bool) (ok bool, message string)
}

// Subscriber secret PPP tal como lo reporta el router (entrada de la importación).
type Subscriber struct {
	SecretID     string // ".id" interno del router
	Username     string // name del secret
	Password     string
	Profile      string // ej: "10Mbps_Home": el prefijo numérico es la velocidad
	Service      string // "pppoe", "any", ...
	Comment      string
	LastCallerID string // última MAC registrada
	Disabled     bool
}

// SubscriberSource lista los secrets PPP del router (importación masiva).
type SubscriberSource interface {
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
}

// BillingTxRunner ejecuta fn dentro de una transacción del entity store con
// repos de pagos y clientes atados a la misma tx: el pago y el flip de
// activación se confirman o descartan juntos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		paymentRepo repository.PaymentRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante PDF de un pago.
type ReceiptPDFGenerator interface {
	GenerateReceipt(ctx context.Context, payment *entity.Payment, customer *entity.Customer, collector *entity.User) ([]byte, error)
}
