package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	MethodBankTransfer  = "BANK_TRANSFER"
	MethodBkash         = "BKASH"
	MethodCash          = "CASH"
	MethodNagad         = "NAGAD"
	MethodMobileBanking = "MOBILE_BANKING"
	MethodOnlinePayment = "ONLINE_PAYMENT"
	MethodRocket        = "ROCKET"
	MethodOther         = "OTHER"
)

// BillingMonths son las claves de período válidas: un pago por cliente y mes.
var BillingMonths = []string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

// Payment representa la factura mensual de un cliente y lo cobrado contra ella.
// BillAmount es un snapshot del precio del plan al momento de facturar;
// Paid es derivado: Amount >= BillAmount o un override explícito.
type Payment struct {
	ID            string
	CustomerID    string
	Customer      *Customer // cargado en listados/detalle, opcional
	BillAmount    decimal.Decimal
	Amount        decimal.Decimal
	BillingMonth  string // JANUARY..DECEMBER
	PaymentMethod string
	Paid          bool
	TransactionID string
	PaymentDate   *time.Time
	Note          string
	Status        string
	EntryByID     string
	EntryBy       *User
	UpdatedByID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsBillingMonth verifica que s sea una clave de mes válida.
func IsBillingMonth(s string) bool {
	for _, m := range BillingMonths {
		if m == s {
			return true
		}
	}
	return false
}

// IsPaymentMethod verifica que s sea un método de pago aceptado.
func IsPaymentMethod(s string) bool {
	switch s {
	case MethodBankTransfer, MethodBkash, MethodCash, MethodNagad,
		MethodMobileBanking, MethodOnlinePayment, MethodRocket, MethodOther:
		return true
	}
	return false
}

// CurrentBillingMonth devuelve la clave del mes calendario de t (ej: "MARCH").
func CurrentBillingMonth(t time.Time) string {
	return strings.ToUpper(t.Month().String())
}
