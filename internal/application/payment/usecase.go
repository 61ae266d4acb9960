// Package payment orquesta la pasarela de pagos: inicio y verificación de transacciones.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/domain"
)

// StatusSuccess estado que la pasarela informa para un cobro completado.
const StatusSuccess = "success"

// ErrNotVerified la transacción existe pero no terminó en success.
var ErrNotVerified = errors.New("la transacción no fue exitosa")

var minorUnits = decimal.NewFromInt(100)

// GatewayError fallo de la pasarela; Details viaja al cliente.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paystack %s: %v", e.Op, e.Err)
}

// Unwrap permite errors.Is(err, domain.ErrPaymentGateway).
func (e *GatewayError) Unwrap() []error {
	return []error{domain.ErrPaymentGateway, e.Err}
}

// Details mensaje de la pasarela.
func (e *GatewayError) Details() string {
	return e.Err.Error()
}

// UseCase casos de uso de pagos.
type UseCase struct {
	gateway ports.PaymentGateway
}

// NewUseCase construye el caso de uso.
func NewUseCase(gateway ports.PaymentGateway) *UseCase {
	return &UseCase{gateway: gateway}
}

// Initialize convierte el monto a unidades mínimas (x100) e inicia el cobro.
func (uc *UseCase) Initialize(ctx context.Context, in dto.InitPaymentRequest) (*dto.InitPaymentResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email requerido", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	minor := in.Amount.Mul(minorUnits)
	if !minor.IsPositive() || !minor.IsInteger() {
		return nil, fmt.Errorf("%w: amount debe ser positivo con a lo sumo dos decimales", domain.ErrInvalidInput)
	}

	data, err := uc.gateway.InitializeTransaction(ctx, email, minor.IntPart())
	if err != nil {
		return nil, &GatewayError{Op: "initialize", Err: err}
	}
	return &dto.InitPaymentResponse{Message: "Paystack payment initiated", Data: data}, nil
}

// Verify consulta la transacción. Si no es success devuelve la respuesta junto con ErrNotVerified.
func (uc *UseCase) Verify(ctx context.Context, reference string) (*dto.VerifyPaymentResponse, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference requerida", domain.ErrInvalidInput)
	}
	v, err := uc.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, &GatewayError{Op: "verify", Err: err}
	}
	out := &dto.VerifyPaymentResponse{Verified: v.Status == StatusSuccess, Data: v.Data}
	if !out.Verified {
		return out, ErrNotVerified
	}
	return out, nil
}
