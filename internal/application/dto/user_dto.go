package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// RegisterRequest entrada para registro: name, email, password, role.
// Image se completa en el handler multipart, no viene en el JSON.
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
	Image    string `json:"-" form:"-"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest entrada para POST /api/users/reset-password.
type ResetPasswordRequest struct {
	UserID      int64  `json:"userId"`
	NewPassword string `json:"newPassword"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	Image     string      `json:"image,omitempty"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
}

// RegisterResponse salida de registro.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginUser usuario autenticado. vendorId/customerId solo aparecen para su rol
// y son null cuando el perfil no existe.
type LoginUser struct {
	ID         int64
	Name       string
	Email      string
	Role       entity.Role
	VendorID   *int64
	CustomerID *int64
}

// MarshalJSON emite vendorId o customerId según el rol.
func (u LoginUser) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
	switch u.Role {
	case entity.RoleVendor:
		out["vendorId"] = u.VendorID
	case entity.RoleCustomer:
		out["customerId"] = u.CustomerID
	case entity.RoleAdmin:
	}
	return json.Marshal(out)
}

// LoginResponse salida de login. No se emite token: la API es sin sesión.
type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

// RoleCountsResponse salida de GET /api/users/counts.
type RoleCountsResponse struct {
	Admins    int64 `json:"admins"`
	Vendors   int64 `json:"vendors"`
	Customers int64 `json:"customers"`
}
