package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/netbill-api/internal/application/billing"
	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

// PaymentHandler maneja las peticiones HTTP de pagos y cobros.
type PaymentHandler struct {
	applyUC   *billing.ApplyPaymentUseCase
	uc        *billing.PaymentUseCase
	receiptUC *billing.ReceiptUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(
	applyUC *billing.ApplyPaymentUseCase,
	uc *billing.PaymentUseCase,
	receiptUC *billing.ReceiptUseCase,
) *PaymentHandler {
	return &PaymentHandler{applyUC: applyUC, uc: uc, receiptUC: receiptUC}
}

// Create POST /api/payments — registra un cobro contra la factura del mes.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.applyUC.Apply(c.Context(), billing.ApplyPaymentInput{
		CustomerID:    in.CustomerID,
		BillingMonth:  in.BillingMonth,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		PaymentDate:   in.PaymentDate,
		PaidOverride:  in.Paid,
		Note:          in.Note,
		EntryBy:       GetActor(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id, billing_month válido y amount >= 0 son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		case errors.Is(err, domain.ErrFreeCustomer):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "FREE_CUSTOMER", Message: "los clientes gratuitos no se facturan"})
		case errors.Is(err, domain.ErrAlreadyPaid):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "el pago de ese período ya está liquidado"})
		case errors.Is(err, domain.ErrIntegrityConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INTEGRITY_CONFLICT", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyPaymentResponse{
		Payment:             billing.ToPaymentResponse(result.Payment),
		ActivationTriggered: result.ActivationTriggered,
		ConnectivityOK:      result.ConnectivityOK,
		ConnectivityMessage: result.ConnectivityMessage,
	})
}

// List GET /api/payments?paid=&billing_month=&customer_name=&customer_phone=&collected_by=&limit=20&offset=0
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	filter := repository.ListPaymentFilter{
		BillingMonth:  c.Query("billing_month"),
		CustomerName:  c.Query("customer_name"),
		CustomerPhone: c.Query("customer_phone"),
		CollectedBy:   c.Query("collected_by"),
	}
	if v := c.Query("paid"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paid debe ser booleano"})
		}
		filter.Paid = &b
	}
	list, err := h.uc.List(c.Context(), filter, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID GET /api/payments/:id
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	payment, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(payment)
}

// Update PUT /api/payments/:id — corrección administrativa.
// Montos y bandera paid de un pago liquidado son inmutables.
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.Update(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		case errors.Is(err, domain.ErrAlreadyPaid):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "el pago ya está liquidado; su monto y bandera paid son inmutables"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del pago inválidos"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(payment)
}

// Delete DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt GET /api/payments/:id/receipt — descarga el comprobante en PDF.
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receiptUC.DownloadReceipt(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_PAID", Message: "solo los pagos liquidados tienen comprobante"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
