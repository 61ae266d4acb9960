package auth

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta la creación de usuario + perfil en una sola transacción.
// Si fn devuelve error no queda ninguna fila escrita.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		users repository.UserRepository,
		vendors repository.VendorRepository,
		customers repository.CustomerRepository,
	) error) error
}

// PasswordHasher hash y verificación de contraseñas (implementado por pkg/password).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}
