package repository

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no existe la fila.
type UserRepository interface {
	// Create inserta el usuario y completa ID y CreatedAt.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
	CountByRole(ctx context.Context) (*entity.RoleCounts, error)
	// UpdatePassword devuelve false si el usuario no existe.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error)
	Delete(ctx context.Context, id int64) error
}
