package usecase

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

// VendorUseCase consulta de vendedores y actualización de logo.
type VendorUseCase struct {
	repo   repository.VendorRepository
	images ports.ImageStore
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository, images ports.ImageStore) *VendorUseCase {
	return &VendorUseCase{repo: repo, images: images}
}

// List lista todos los vendedores.
func (uc *VendorUseCase) List(ctx context.Context) ([]dto.VendorResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVendorResponse(v))
	}
	return out, nil
}

// GetByID obtiene un vendedor. ErrVendorNotFound si no existe.
func (uc *VendorUseCase) GetByID(ctx context.Context, id int64) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVendorNotFound
	}
	out := toVendorResponse(v)
	return &out, nil
}

// UpdateLogo guarda la imagen y la asigna al vendedor. Si la actualización falla la imagen se borra.
func (uc *VendorUseCase) UpdateLogo(ctx context.Context, vendorID int64, file *multipart.FileHeader) (*dto.UpdateLogoResponse, error) {
	if vendorID <= 0 || file == nil {
		return nil, domain.ErrInvalidInput
	}
	name, err := uc.images.Save(file)
	if err != nil {
		return nil, err
	}
	found, err := uc.repo.UpdateImage(ctx, vendorID, name)
	if err == nil && !found {
		err = domain.ErrVendorNotFound
	}
	if err != nil {
		discardImage(uc.images, name)
		return nil, err
	}
	return &dto.UpdateLogoResponse{Message: "Vendor logo updated successfully", Image: name}, nil
}

func toVendorResponse(v *entity.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		ID:          v.ID,
		UserID:      v.UserID,
		Name:        v.Name,
		Description: v.Description,
		Image:       v.Image,
		Category:    v.Category,
	}
}

// discardImage borra una imagen ya guardada cuando la escritura en base falla.
func discardImage(images ports.ImageStore, name string) {
	if err := images.Remove(name); err != nil {
		log.Warn().Err(err).Str("image", name).Msg("no se pudo borrar imagen huérfana")
	}
}
