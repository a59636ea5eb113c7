package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/netbill-api/internal/application/billing"
	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
)

// BillingHandler corridas de facturación y mantenimiento de montos.
type BillingHandler struct {
	generateUC *billing.GenerateBillsUseCase
	paymentUC  *billing.PaymentUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(generateUC *billing.GenerateBillsUseCase, paymentUC *billing.PaymentUseCase) *BillingHandler {
	return &BillingHandler{generateUC: generateUC, paymentUC: paymentUC}
}

// GenerateBills POST /api/billing/generate?billing_month=AUGUST
// Idempotente: los clientes ya facturados en el período se saltan.
func (h *BillingHandler) GenerateBills(c *fiber.Ctx) error {
	period := c.Query("billing_month")
	created, err := h.generateUC.Generate(c.Context(), period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "billing_month debe ser un mes válido en mayúsculas (ej: AUGUST)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if period == "" {
		period = entity.CurrentBillingMonth(time.Now())
	}
	return c.JSON(dto.GenerateBillsResponse{BillingMonth: period, Created: created})
}

// RealignBillAmounts POST /api/billing/realign-bill-amounts
// Reescribe bill_amount de todos los pagos con el precio actual del plan.
func (h *BillingHandler) RealignBillAmounts(c *fiber.Ctx) error {
	updated, err := h.paymentUC.RealignBillAmounts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"updated_payments_count": updated})
}
