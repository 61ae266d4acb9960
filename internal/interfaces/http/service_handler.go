package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/usecase"
	"github.com/jhoicas/naimarket-api/internal/domain"
)

// ServiceHandler catálogo de servicios y descarga segura de archivos.
type ServiceHandler struct {
	uc    *usecase.CatalogUseCase
	files *usecase.FileAccessUseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *usecase.CatalogUseCase, files *usecase.FileAccessUseCase) *ServiceHandler {
	return &ServiceHandler{uc: uc, files: files}
}

// List godoc
// @Summary      Listar servicios
// @Tags         services
// @Produce      json
// @Param        vendor_id  query  int  false  "Filtrar por vendedor"
// @Success      200  {array}   dto.ServiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	var vendorID *int64
	if c.Query("vendor_id") != "" {
		id, ok := queryID(c, "vendor_id")
		if !ok {
			return badRequest(c, "VALIDATION", "vendor_id inválido")
		}
		vendorID = &id
	}
	out, err := h.uc.List(c.UserContext(), vendorID)
	if err != nil {
		return writeError(c, err, "Error fetching services")
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Total de servicios
// @Tags         services
// @Produce      json
// @Success      200  {object}  dto.ServiceCountResponse
// @Router       /api/services/count [get]
func (h *ServiceHandler) Count(c *fiber.Ctx) error {
	out, err := h.uc.Count(c.UserContext())
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Publicar servicio (multipart, imagen opcional)
// @Tags         services
// @Accept       multipart/form-data
// @Produce      json
// @Param        vendor_id    formData  int     true   "ID del vendedor"
// @Param        title        formData  string  true   "Título"
// @Param        description  formData  string  false  "Descripción"
// @Param        price        formData  number  true   "Precio"
// @Param        unit         formData  string  false  "Unidad"
// @Param        category     formData  string  true   "Categoría"
// @Param        image        formData  file    false  "Imagen (jpeg, png, webp)"
// @Success      201  {object}  dto.CreateServiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in, formImage(c))
	if err != nil {
		return writeError(c, err, "Failed to add service")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar servicio
// @Tags         services
// @Produce      json
// @Param        id   path  int  true  "ID del servicio"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "Failed to delete service")
	}
	return c.JSON(dto.MessageResponse{Message: "Service deleted successfully"})
}

// SecureFileToken godoc
// @Summary      Emitir token de descarga para un archivo
// @Tags         files
// @Produce      json
// @Param        file  query  string  true  "Nombre del archivo"
// @Param        key   query  string  true  "Clave emisora"
// @Success      200  {object}  dto.FileTokenResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/secure-file/token [get]
func (h *ServiceHandler) SecureFileToken(c *fiber.Ctx) error {
	out, err := h.files.Issue(c.Query("key"), c.Query("file"))
	if err != nil {
		return fileError(c, err)
	}
	return c.JSON(out)
}

// SecureFile godoc
// @Summary      Descargar archivo con token
// @Tags         files
// @Produce      octet-stream
// @Param        file   query  string  true  "Nombre del archivo"
// @Param        token  query  string  true  "Token emitido para ese archivo"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/secure-file [get]
func (h *ServiceHandler) SecureFile(c *fiber.Ctx) error {
	path, err := h.files.Resolve(c.Query("token"), c.Query("file"))
	if err != nil {
		return fileError(c, err)
	}
	return c.SendFile(path)
}

func fileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return badRequest(c, "VALIDATION", "invalid file name")
	}
	return writeError(c, err, "File access error")
}
