package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/usecase"
)

// VendorHandler consulta de vendedores y logo.
type VendorHandler struct {
	uc *usecase.VendorUseCase
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// List godoc
// @Summary      Listar vendedores
// @Tags         vendors
// @Produce      json
// @Success      200  {array}   dto.VendorResponse
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vendedor
// @Tags         vendors
// @Produce      json
// @Param        id   path  int  true  "ID del vendedor"
// @Success      200  {object}  dto.VendorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// UpdateLogo godoc
// @Summary      Actualizar logo del vendedor
// @Tags         vendors
// @Accept       multipart/form-data
// @Produce      json
// @Param        vendorId  formData  int   true  "ID del vendedor"
// @Param        image     formData  file  true  "Imagen (jpeg, png, webp)"
// @Success      200  {object}  dto.UpdateLogoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/vendors/update-logo [post]
func (h *VendorHandler) UpdateLogo(c *fiber.Ctx) error {
	vendorID, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("vendorId")), 10, 64)
	image := formImage(c)
	if err != nil || vendorID <= 0 || image == nil {
		return badRequest(c, "VALIDATION", "Missing vendorId or image file")
	}
	out, err := h.uc.UpdateLogo(c.UserContext(), vendorID, image)
	if err != nil {
		return writeError(c, err, "Failed to update logo")
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Logout de vendedor (sin sesión en servidor)
// @Tags         vendors
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/vendors/logout [post]
func (h *VendorHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "Vendor logged out successfully"})
}
