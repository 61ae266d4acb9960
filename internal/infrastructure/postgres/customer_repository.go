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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	db Querier
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(db Querier) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Create inserta el perfil de cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO customers (user_id, name) VALUES ($1, $2) RETURNING id`,
		c.UserID, c.Name,
	).Scan(&c.ID)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrInvalidReference
		case isUniqueViolation(err):
			return domain.ErrConflict
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByUserID obtiene el perfil de cliente de un usuario.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Customer, error) {
	var c entity.Customer
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name FROM customers WHERE user_id = $1 ORDER BY id LIMIT 1`, userID,
	).Scan(&c.ID, &c.UserID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by user: %w", err)
	}
	return &c, nil
}
