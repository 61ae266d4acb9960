package auth

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
	"github.com/jhoicas/naimarket-api/pkg/password"
)

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	tx        RegistrationTxRunner
	users     repository.UserRepository
	vendors   repository.VendorRepository
	customers repository.CustomerRepository
	hasher    PasswordHasher
	images    ports.ImageStore
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tx RegistrationTxRunner,
	users repository.UserRepository,
	vendors repository.VendorRepository,
	customers repository.CustomerRepository,
	hasher PasswordHasher,
) *AuthUseCase {
	return &AuthUseCase{tx: tx, users: users, vendors: vendors, customers: customers, hasher: hasher}
}

// WithImages habilita RegisterWithImage.
func (uc *AuthUseCase) WithImages(images ports.ImageStore) *AuthUseCase {
	uc.images = images
	return uc
}

// RegisterWithImage valida, guarda la imagen de perfil y registra. Si el registro falla la imagen se borra.
func (uc *AuthUseCase) RegisterWithImage(ctx context.Context, in dto.RegisterRequest, file *multipart.FileHeader) (*dto.RegisterResponse, error) {
	if file == nil {
		return uc.Register(ctx, in)
	}
	if uc.images == nil {
		return nil, errors.New("auth: almacén de imágenes no configurado")
	}
	if _, _, _, err := validateRegistration(in); err != nil {
		return nil, err
	}
	name, err := uc.images.Save(file)
	if err != nil {
		return nil, err
	}
	in.Image = name
	out, err := uc.Register(ctx, in)
	if err != nil {
		if rmErr := uc.images.Remove(name); rmErr != nil {
			log.Warn().Err(rmErr).Str("image", name).Msg("no se pudo borrar imagen de registro fallido")
		}
		return nil, err
	}
	return out, nil
}

// Register crea el usuario y, según el rol, su perfil de vendedor o cliente, todo en una transacción.
// Errores: ErrInvalidInput (campos vacíos), ErrInvalidRole, ErrEmailAlreadyExists,
// ErrProfileCreation (el usuario NO queda creado).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	name, email, role, err := validateRegistration(in)
	if err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Image:        in.Image,
	}
	err = uc.tx.RunRegistration(ctx, func(
		users repository.UserRepository,
		vendors repository.VendorRepository,
		customers repository.CustomerRepository,
	) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		switch role {
		case entity.RoleVendor:
			v := &entity.Vendor{UserID: &user.ID, Name: name, Image: in.Image}
			if err := vendors.Create(ctx, v); err != nil {
				return fmt.Errorf("%w: vendor: %v", domain.ErrProfileCreation, err)
			}
		case entity.RoleCustomer:
			c := &entity.Customer{UserID: &user.ID, Name: name}
			if err := customers.Create(ctx, c); err != nil {
				return fmt.Errorf("%w: customer: %v", domain.ErrProfileCreation, err)
			}
		case entity.RoleAdmin:
			// sin perfil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Message: fmt.Sprintf("%s registered successfully", role),
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			Image:     user.Image,
			CreatedAt: &user.CreatedAt,
		},
	}, nil
}

// Login verifica email/password y adjunta el id de perfil según el rol.
// Email inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	out := dto.LoginUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	switch user.Role {
	case entity.RoleVendor:
		v, err := uc.vendors.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("vendor lookup: %w", err)
		}
		if v != nil {
			out.VendorID = &v.ID
		}
	case entity.RoleCustomer:
		c, err := uc.customers.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("customer lookup: %w", err)
		}
		if c != nil {
			out.CustomerID = &c.ID
		}
	case entity.RoleAdmin:
	}
	return &dto.LoginResponse{Message: "Login successful", User: out}, nil
}

func validateRegistration(in dto.RegisterRequest) (name, email string, role entity.Role, err error) {
	name = strings.TrimSpace(in.Name)
	email = normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return "", "", "", domain.ErrInvalidInput
	}
	role, err = entity.ParseRole(in.Role)
	if err != nil {
		return "", "", "", err
	}
	return name, email, role, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
