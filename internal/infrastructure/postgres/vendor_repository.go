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

var _ repository.VendorRepository = (*VendorRepo)(nil)

const vendorColumns = `id, user_id, name, COALESCE(description, ''), COALESCE(image, ''), COALESCE(category, '')`

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	db Querier
}

// NewVendorRepository construye el adaptador.
func NewVendorRepository(db Querier) *VendorRepo {
	return &VendorRepo{db: db}
}

// Create inserta el perfil de vendedor.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := `
		INSERT INTO vendors (user_id, name, description, image, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		v.UserID, v.Name, nullString(v.Description), nullString(v.Image), nullString(v.Category),
	).Scan(&v.ID)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrInvalidReference
		case isUniqueViolation(err):
			return domain.ErrConflict
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un vendedor.
func (r *VendorRepo) GetByID(ctx context.Context, id int64) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

// GetByUserID obtiene el perfil de vendedor de un usuario.
func (r *VendorRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE user_id = $1 ORDER BY id LIMIT 1`, userID)
}

func (r *VendorRepo) getOne(ctx context.Context, query string, arg int64) (*entity.Vendor, error) {
	v, err := scanVendor(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// List devuelve todos los vendedores.
func (r *VendorRepo) List(ctx context.Context) ([]*entity.Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// UpdateImage asigna el logo. Devuelve false si el vendedor no existe.
func (r *VendorRepo) UpdateImage(ctx context.Context, id int64, image string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE vendors SET image = $1 WHERE id = $2`, image, id)
	if err != nil {
		return false, fmt.Errorf("update vendor image: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	if err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Description, &v.Image, &v.Category); err != nil {
		return nil, err
	}
	return &v, nil
}
