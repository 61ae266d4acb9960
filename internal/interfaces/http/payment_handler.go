package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/payment"
)

// PaymentHandler pagos con Paystack.
type PaymentHandler struct {
	uc *payment.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Initialize godoc
// @Summary      Iniciar pago con Paystack
// @Description  amount en unidades enteras de la moneda; se envía x100.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave para reintentos seguros"
// @Param        body  body  dto.InitPaymentRequest  true  "email, amount"
// @Success      200   {object}  dto.InitPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.PaymentErrorResponse
// @Router       /api/pay/paystack [post]
func (h *PaymentHandler) Initialize(c *fiber.Ctx) error {
	var in dto.InitPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Initialize(c.UserContext(), in)
	if err != nil {
		return paymentError(c, err, "Paystack init failed")
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar pago
// @Tags         payments
// @Produce      json
// @Param        reference  path  string  true  "Referencia de la transacción"
// @Success      200  {object}  dto.VerifyPaymentResponse
// @Failure      400  {object}  dto.VerifyPaymentResponse
// @Failure      500  {object}  dto.PaymentErrorResponse
// @Router       /api/pay/paystack/verify/{reference} [get]
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.UserContext(), c.Params("reference"))
	if errors.Is(err, payment.ErrNotVerified) {
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	if err != nil {
		return paymentError(c, err, "Paystack verification failed")
	}
	return c.JSON(out)
}

func paymentError(c *fiber.Ctx, err error, msg string) error {
	var gwErr *payment.GatewayError
	if errors.As(err, &gwErr) {
		log.Error().Err(err).Msg(msg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.PaymentErrorResponse{
			Code:    "PAYMENT_GATEWAY",
			Message: msg,
			Details: gwErr.Details(),
		})
	}
	return writeError(c, err, msg)
}
