package repository

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// ServiceRepository puerto de persistencia del catálogo.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	// List filtra por vendedor cuando vendorID no es nil.
	List(ctx context.Context, vendorID *int64) ([]*entity.Service, error)
	Count(ctx context.Context) (int64, error)
	// Delete devuelve false si no se afectó ninguna fila.
	Delete(ctx context.Context, id int64) (bool, error)
}
