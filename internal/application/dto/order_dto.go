package dto

import (
	"time"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// CreateOrderRequest entrada de POST /api/orders.
type CreateOrderRequest struct {
	CustomerID int64 `json:"customer_id"`
	VendorID   int64 `json:"vendor_id"`
	ServiceID  int64 `json:"service_id"`
	Quantity   int   `json:"quantity"`
}

// CreateOrderResponse salida de POST /api/orders.
type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

// UpdateOrderStatusRequest entrada de PATCH /api/orders/:id.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse columnas propias del pedido.
type OrderResponse struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"customer_id"`
	VendorID   int64              `json:"vendor_id"`
	ServiceID  int64              `json:"service_id"`
	Quantity   int                `json:"quantity"`
	Status     entity.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

// CustomerOrderResponse pedido enriquecido con servicio y vendedor.
type CustomerOrderResponse struct {
	OrderResponse
	ServiceTitle string `json:"service_title"`
	ServiceImage string `json:"service_image"`
	VendorName   string `json:"vendor_name"`
}

// VendorOrderResponse pedido enriquecido con servicio y cliente.
type VendorOrderResponse struct {
	OrderResponse
	ServiceTitle string `json:"service_title"`
	CustomerName string `json:"customer_name"`
}
