package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/domain"
)

// writeError traduce errores de dominio a ErrorResponse. Lo no reconocido es 500 con mensaje genérico.
func writeError(c *fiber.Ctx, err error, internalMsg string) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", internalMsg
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "role must be one of admin, vendor, customer"
	case errors.Is(err, domain.ErrInvalidStatus):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "status must be one of pending, confirmed, shipped, delivered, cancelled"
	case errors.Is(err, domain.ErrInvalidReference):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "referenced customer, vendor or service does not exist"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "Missing required fields"
	case errors.Is(err, domain.ErrUnsupportedMedia):
		status, code, msg = fiber.StatusBadRequest, "UNSUPPORTED_MEDIA", "only jpeg, png and webp images are allowed"
	case errors.Is(err, domain.ErrFileTooLarge):
		status, code, msg = fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "image exceeds the upload size limit"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "Unauthorized access"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code, msg = fiber.StatusConflict, "EMAIL_EXISTS", "Email already registered"
	case errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", "resource is still referenced by orders"
	case errors.Is(err, domain.ErrUserNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "User not found"
	case errors.Is(err, domain.ErrVendorNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "Vendor not found"
	case errors.Is(err, domain.ErrServiceNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "Service not found"
	case errors.Is(err, domain.ErrOrderNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "Order not found"
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "File not found"
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg(internalMsg)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID lee un id numérico positivo del query string.
func queryID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ErrorHandler respuesta JSON para errores que escapan a los handlers (404 de ruta, body limit, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "FILE_TOO_LARGE"
		case fiber.StatusBadRequest:
			code = "INVALID_BODY"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Server error"})
}
