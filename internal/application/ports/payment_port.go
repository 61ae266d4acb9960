package ports

import (
	"context"
	"encoding/json"
)

// PaymentVerification resultado de verificar una transacción en la pasarela.
type PaymentVerification struct {
	Status string          // estado informado por la pasarela ("success", "failed", "abandoned", ...)
	Data   json.RawMessage // objeto data tal cual lo devolvió la pasarela
}

// PaymentGateway define el puerto de salida hacia la pasarela de pagos.
// Moneda y URL de callback son configuración del adaptador.
type PaymentGateway interface {
	// InitializeTransaction inicia un cobro; amountMinor está en la unidad mínima (x100).
	InitializeTransaction(ctx context.Context, email string, amountMinor int64) (json.RawMessage, error)
	VerifyTransaction(ctx context.Context, reference string) (*PaymentVerification, error)
}
