package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest body para POST /api/payments: registra un cobro contra
// la factura del par (cliente, mes). Paid=true fuerza liquidación (override).
type ApplyPaymentRequest struct {
	CustomerID    string          `json:"customer_id"`
	BillingMonth  string          `json:"billing_month"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Paid          bool            `json:"paid,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// UpdatePaymentRequest body para PUT /api/payments/:id (edición administrativa).
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	PaymentDate   *time.Time       `json:"payment_date,omitempty"`
	Paid          *bool            `json:"paid,omitempty"`
	Note          *string          `json:"note,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID             string            `json:"id"`
	Customer       *CustomerResponse `json:"customer,omitempty"`
	CustomerID     string            `json:"customer_id"`
	BillAmount     decimal.Decimal   `json:"bill_amount"`
	Amount         decimal.Decimal   `json:"amount"`
	BillingMonth   string            `json:"billing_month"`
	PaymentMethod  string            `json:"payment_method"`
	Paid           bool              `json:"paid"`
	TransactionID  string            `json:"transaction_id,omitempty"`
	PaymentDate    *time.Time        `json:"payment_date,omitempty"`
	Note           string            `json:"note,omitempty"`
	CollectedBy    string            `json:"collected_by,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ApplyPaymentResponse resultado del registro de un cobro. Si el pago quedó
// liquidado y el cliente estaba inactivo, se reporta el intento de reconexión:
// la falla del router NO revierte el pago (queda como warning).
type ApplyPaymentResponse struct {
	Payment             PaymentResponse `json:"payment"`
	ActivationTriggered bool            `json:"activation_triggered"`
	ConnectivityOK      bool            `json:"connectivity_ok"`
	ConnectivityMessage string          `json:"connectivity_message,omitempty"`
}

// GenerateBillsResponse resultado de la corrida de facturación del período.
type GenerateBillsResponse struct {
	BillingMonth string `json:"billing_month"`
	Created      int    `json:"created_payments_count"`
}
