package repository

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para perfiles de cliente.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByUserID(ctx context.Context, userID int64) (*entity.Customer, error)
}
