package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// InitPaymentRequest entrada de POST /api/pay/paystack. Amount en unidades enteras de la moneda.
type InitPaymentRequest struct {
	Email  string          `json:"email"`
	Amount decimal.Decimal `json:"amount"`
}

// InitPaymentResponse devuelve la respuesta de la pasarela sin modificar.
type InitPaymentResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// VerifyPaymentResponse resultado de la verificación; Data es el objeto data de la pasarela.
type VerifyPaymentResponse struct {
	Verified bool            `json:"verified"`
	Data     json.RawMessage `json:"data"`
}

// PaymentErrorResponse error de la pasarela con detalle.
type PaymentErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}
