package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/naimarket-api/internal/domain"
)

// Role rol de un usuario. Conjunto cerrado: admin, vendor, customer.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// ParseRole valida un rol recibido en la frontera HTTP.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleVendor, RoleCustomer:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRole, s)
	}
}

// User cuenta raíz; Vendor y Customer son extensiones de perfil.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	Image        string
	CreatedAt    time.Time
}

// RoleCounts agregado de usuarios por rol.
type RoleCounts struct {
	Admins    int64
	Vendors   int64
	Customers int64
}
