// seed crea la primera cuenta admin. Si el email ya existe no hace nada.
//
// Uso: go run ./cmd/seed <email> <password> [nombre]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/naimarket-api/internal/application/auth"
	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/postgres"
	"github.com/jhoicas/naimarket-api/pkg/config"
	"github.com/jhoicas/naimarket-api/pkg/password"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed <email> <password> [nombre]")
		os.Exit(2)
	}
	name := "Administrator"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewUserRepository(pool),
		postgres.NewVendorRepository(pool),
		postgres.NewCustomerRepository(pool),
		password.NewHasher(cfg.Security.BcryptCost),
	)
	out, err := uc.Register(ctx, dto.RegisterRequest{
		Name:     name,
		Email:    os.Args[1],
		Password: os.Args[2],
		Role:     "admin",
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Printf("El admin %s ya existe\n", os.Args[1])
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin creado: id=%d email=%s\n", out.User.ID, out.User.Email)
}
