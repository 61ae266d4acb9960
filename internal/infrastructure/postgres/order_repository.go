package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserta el pedido. Referencias inexistentes → ErrInvalidReference.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if o.Status == "" {
		o.Status = entity.OrderStatusPending
	}
	query := `
		INSERT INTO orders (customer_id, vendor_id, service_id, quantity, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		o.CustomerID, o.VendorID, o.ServiceID, o.Quantity, string(o.Status),
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByCustomer pedidos del cliente con título/imagen del servicio y nombre del vendedor.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.CustomerOrder, error) {
	query := `
		SELECT o.id, o.customer_id, o.vendor_id, o.service_id, o.quantity, o.status, o.created_at,
		       s.title, COALESCE(s.image, ''), v.name
		FROM orders o
		JOIN services s ON s.id = o.service_id
		JOIN vendors v ON v.id = o.vendor_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomerOrder
	for rows.Next() {
		var (
			co     entity.CustomerOrder
			status string
		)
		if err := rows.Scan(&co.ID, &co.CustomerID, &co.VendorID, &co.ServiceID, &co.Quantity, &status, &co.CreatedAt,
			&co.ServiceTitle, &co.ServiceImage, &co.VendorName); err != nil {
			return nil, fmt.Errorf("scan customer order: %w", err)
		}
		co.Status = entity.OrderStatus(status)
		list = append(list, &co)
	}
	return list, rows.Err()
}

// ListByVendor pedidos recibidos con título del servicio y nombre del cliente.
func (r *OrderRepo) ListByVendor(ctx context.Context, vendorID int64) ([]*entity.VendorOrder, error) {
	query := `
		SELECT o.id, o.customer_id, o.vendor_id, o.service_id, o.quantity, o.status, o.created_at,
		       s.title, COALESCE(u.name, c.name)
		FROM orders o
		JOIN services s ON s.id = o.service_id
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN users u ON u.id = c.user_id
		WHERE o.vendor_id = $1
		ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.VendorOrder
	for rows.Next() {
		var (
			vo     entity.VendorOrder
			status string
		)
		if err := rows.Scan(&vo.ID, &vo.CustomerID, &vo.VendorID, &vo.ServiceID, &vo.Quantity, &status, &vo.CreatedAt,
			&vo.ServiceTitle, &vo.CustomerName); err != nil {
			return nil, fmt.Errorf("scan vendor order: %w", err)
		}
		vo.Status = entity.OrderStatus(status)
		list = append(list, &vo)
	}
	return list, rows.Err()
}

// UpdateStatus sobrescribe el estado. Devuelve false si el pedido no existe.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetReceipt datos del comprobante; (nil, nil) si el pedido no existe.
func (r *OrderRepo) GetReceipt(ctx context.Context, id int64) (*entity.OrderReceipt, error) {
	query := `
		SELECT o.id, o.customer_id, o.vendor_id, o.service_id, o.quantity, o.status, o.created_at,
		       s.title, COALESCE(s.unit, ''), s.price, v.name, COALESCE(u.name, c.name)
		FROM orders o
		JOIN services s ON s.id = o.service_id
		JOIN vendors v ON v.id = o.vendor_id
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN users u ON u.id = c.user_id
		WHERE o.id = $1`
	var (
		rc     entity.OrderReceipt
		status string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rc.ID, &rc.CustomerID, &rc.VendorID, &rc.ServiceID, &rc.Quantity, &status, &rc.CreatedAt,
		&rc.ServiceTitle, &rc.ServiceUnit, &rc.UnitPrice, &rc.VendorName, &rc.CustomerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order receipt: %w", err)
	}
	rc.Status = entity.OrderStatus(status)
	return &rc, nil
}
