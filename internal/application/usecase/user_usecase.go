package usecase

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

// Hasher hash de contraseñas (implementado por pkg/password).
type Hasher interface {
	Hash(plain string) (string, error)
}

// UserUseCase administración de usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher Hasher
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, hasher Hasher) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher}
}

// List lista todos los usuarios (sin hash de contraseña).
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponses(list), nil
}

// ListAdmins lista los usuarios con rol admin.
func (uc *UserUseCase) ListAdmins(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return toUserResponses(list), nil
}

// CountByRole agrega usuarios por rol.
func (uc *UserUseCase) CountByRole(ctx context.Context) (*dto.RoleCountsResponse, error) {
	c, err := uc.repo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RoleCountsResponse{Admins: c.Admins, Vendors: c.Vendors, Customers: c.Customers}, nil
}

// ResetPassword reemplaza el hash de contraseña. ErrUserNotFound si el id no existe.
func (uc *UserUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if in.UserID <= 0 || in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	found, err := uc.repo.UpdatePassword(ctx, in.UserID, hash)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario (los perfiles caen en cascada).
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

func toUserResponses(list []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		created := u.CreatedAt
		out = append(out, dto.UserResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			Image:     u.Image,
			CreatedAt: &created,
		})
	}
	return out
}
