package usecase

import (
	"context"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

// maxPrice tope de services.price NUMERIC(12,2).
var maxPrice = decimal.RequireFromString("9999999999.99")

// CatalogUseCase publicaciones (services) de los vendedores. No hay edición.
type CatalogUseCase struct {
	repo   repository.ServiceRepository
	images ports.ImageStore
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.ServiceRepository, images ports.ImageStore) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, images: images}
}

// Count total de servicios.
func (uc *CatalogUseCase) Count(ctx context.Context) (*dto.ServiceCountResponse, error) {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ServiceCountResponse{TotalServices: n}, nil
}

// List lista servicios, opcionalmente de un vendedor.
func (uc *CatalogUseCase) List(ctx context.Context, vendorID *int64) ([]dto.ServiceResponse, error) {
	list, err := uc.repo.List(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceResponse(s))
	}
	return out, nil
}

// Create valida el formulario, guarda la imagen (opcional) y persiste el servicio.
// Una imagen rechazada corta el flujo antes de tocar la base.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateServiceRequest, image *multipart.FileHeader) (*dto.CreateServiceResponse, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	if strings.TrimSpace(in.VendorID) == "" || title == "" || strings.TrimSpace(in.Price) == "" || category == "" {
		return nil, domain.ErrInvalidInput
	}
	vendorID, err := strconv.ParseInt(strings.TrimSpace(in.VendorID), 10, 64)
	if err != nil || vendorID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	price = price.Round(2)
	if price.GreaterThan(maxPrice) {
		return nil, domain.ErrInvalidInput
	}

	svc := &entity.Service{
		VendorID:    vendorID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Unit:        strings.TrimSpace(in.Unit),
		Category:    category,
	}
	if image != nil {
		name, err := uc.images.Save(image)
		if err != nil {
			return nil, err
		}
		svc.Image = name
	}
	if err := uc.repo.Create(ctx, svc); err != nil {
		if svc.Image != "" {
			discardImage(uc.images, svc.Image)
		}
		return nil, err
	}
	return &dto.CreateServiceResponse{Message: "Service added successfully", Service: toServiceResponse(svc)}, nil
}

// Delete elimina un servicio. ErrServiceNotFound si no existía.
func (uc *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	found, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrServiceNotFound
	}
	return nil
}

func toServiceResponse(s *entity.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          s.ID,
		VendorID:    s.VendorID,
		Title:       s.Title,
		Description: s.Description,
		Price:       s.Price,
		Unit:        s.Unit,
		Image:       s.Image,
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
	}
}
