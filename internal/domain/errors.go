package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrVendorNotFound     = errors.New("vendedor no encontrado")
	ErrServiceNotFound    = errors.New("servicio no encontrado")
	ErrOrderNotFound      = errors.New("pedido no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrInvalidStatus      = errors.New("estado de pedido inválido")
	ErrInvalidReference   = errors.New("referencia a entidad inexistente")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrProfileCreation    = errors.New("no se pudo crear el perfil")
	ErrUnsupportedMedia   = errors.New("tipo de archivo no permitido")
	ErrFileTooLarge       = errors.New("archivo demasiado grande")
	ErrPaymentGateway     = errors.New("error de la pasarela de pagos")
)
