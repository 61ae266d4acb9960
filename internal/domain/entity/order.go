package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/naimarket-api/internal/domain"
)

// OrderStatus estado de un pedido. Conjunto cerrado.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus valida un estado recibido en la frontera HTTP.
// Cualquier estado válido puede sobrescribir a cualquier otro.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
}

// Order pedido de un cliente por una cantidad de un Service de un Vendor.
type Order struct {
	ID         int64
	CustomerID int64
	VendorID   int64
	ServiceID  int64
	Quantity   int
	Status     OrderStatus
	CreatedAt  time.Time
}

// CustomerOrder pedido enriquecido para el listado del cliente.
type CustomerOrder struct {
	Order
	ServiceTitle string
	ServiceImage string
	VendorName   string
}

// VendorOrder pedido enriquecido para el listado del vendedor.
type VendorOrder struct {
	Order
	ServiceTitle string
	CustomerName string
}

// OrderReceipt datos necesarios para el comprobante PDF de un pedido.
type OrderReceipt struct {
	Order
	ServiceTitle string
	ServiceUnit  string
	UnitPrice    decimal.Decimal
	VendorName   string
	CustomerName string
}

// Total precio unitario por cantidad.
func (r OrderReceipt) Total() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}
