package repository

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia de pedidos.
type OrderRepository interface {
	// Create inserta el pedido y completa ID y CreatedAt.
	Create(ctx context.Context, order *entity.Order) error
	// ListByCustomer y ListByVendor ordenan por fecha de creación descendente.
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.CustomerOrder, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]*entity.VendorOrder, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (bool, error)
	GetReceipt(ctx context.Context, id int64) (*entity.OrderReceipt, error)
}
