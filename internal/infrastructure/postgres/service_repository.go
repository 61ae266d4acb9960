package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `id, vendor_id, title, COALESCE(description, ''), price, COALESCE(unit, ''),
	COALESCE(image, ''), category, created_at`

// ServiceRepo implementación del puerto ServiceRepository sobre PostgreSQL.
type ServiceRepo struct {
	db Querier
}

// NewServiceRepository construye el adaptador.
func NewServiceRepository(db Querier) *ServiceRepo {
	return &ServiceRepo{db: db}
}

// Create inserta el servicio. Un vendor_id inexistente se reporta como ErrInvalidReference.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (vendor_id, title, description, price, unit, image, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		s.VendorID, s.Title, nullString(s.Description), s.Price, nullString(s.Unit), nullString(s.Image), s.Category,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// List devuelve el catálogo, filtrado por vendedor si vendorID no es nil.
func (r *ServiceRepo) List(ctx context.Context, vendorID *int64) ([]*entity.Service, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if vendorID != nil {
		rows, err = r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services WHERE vendor_id = $1 ORDER BY id`, *vendorID)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	}
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.VendorID, &s.Title, &s.Description, &s.Price, &s.Unit,
			&s.Image, &s.Category, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count total de servicios.
func (r *ServiceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}

// Delete elimina el servicio. Devuelve false si no existía; ErrConflict si hay pedidos que lo referencian.
func (r *ServiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrConflict
		}
		return false, fmt.Errorf("delete service: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
