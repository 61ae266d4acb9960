package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/usecase"
)

// OrderHandler pedidos.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Place godoc
// @Summary      Crear pedido (estado pending)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave para reintentos seguros"
// @Param        body  body  dto.CreateOrderRequest  true  "customer_id, vendor_id, service_id, quantity"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Place(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "Failed to place order")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListForCustomer godoc
// @Summary      Pedidos de un cliente (más recientes primero)
// @Tags         orders
// @Produce      json
// @Param        customer_id  query  int  true  "ID del cliente"
// @Success      200  {array}   dto.CustomerOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListForCustomer(c *fiber.Ctx) error {
	id, ok := queryID(c, "customer_id")
	if !ok {
		return badRequest(c, "VALIDATION", "Missing customer_id")
	}
	out, err := h.uc.ListForCustomer(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// ListForVendor godoc
// @Summary      Pedidos recibidos por un vendedor (más recientes primero)
// @Tags         orders
// @Produce      json
// @Param        vendor_id  query  int  true  "ID del vendedor"
// @Success      200  {array}   dto.VendorOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/vendor-orders [get]
func (h *OrderHandler) ListForVendor(c *fiber.Ctx) error {
	id, ok := queryID(c, "vendor_id")
	if !ok {
		return badRequest(c, "VALIDATION", "Missing vendor_id")
	}
	out, err := h.uc.ListForVendor(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if strings.TrimSpace(in.Status) == "" {
		return badRequest(c, "VALIDATION", "Status is required")
	}
	if err := h.uc.UpdateStatus(c.UserContext(), id, in); err != nil {
		return writeError(c, err, "Failed to update order status")
	}
	return c.JSON(dto.MessageResponse{Message: "Order status updated successfully"})
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	pdf, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Failed to generate receipt")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="order-%d.pdf"`, id))
	return c.Send(pdf)
}
