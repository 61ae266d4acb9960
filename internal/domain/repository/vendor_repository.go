package repository

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// VendorRepository puerto de persistencia para perfiles de vendedor.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id int64) (*entity.Vendor, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Vendor, error)
	List(ctx context.Context) ([]*entity.Vendor, error)
	// UpdateImage devuelve false si el vendedor no existe.
	UpdateImage(ctx context.Context, id int64, image string) (bool, error)
}
