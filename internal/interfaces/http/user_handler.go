package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/naimarket-api/internal/application/auth"
	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/usecase"
)

// UserHandler administración de usuarios.
type UserHandler struct {
	uc     *usecase.UserUseCase
	authUC *auth.AuthUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, authUC *auth.AuthUseCase) *UserHandler {
	return &UserHandler{uc: uc, authUC: authUC}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// Admins godoc
// @Summary      Listar administradores
// @Tags         users
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Router       /api/users/admins [get]
func (h *UserHandler) Admins(c *fiber.Ctx) error {
	out, err := h.uc.ListAdmins(c.UserContext())
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// Counts godoc
// @Summary      Conteo de usuarios por rol
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.RoleCountsResponse
// @Router       /api/users/counts [get]
func (h *UserHandler) Counts(c *fiber.Ctx) error {
	out, err := h.uc.CountByRole(c.UserContext())
	if err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Reemplazar contraseña
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "userId, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/reset-password [post]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.UserID <= 0 || in.NewPassword == "" {
		return badRequest(c, "VALIDATION", "Missing userId or new password")
	}
	if err := h.uc.ResetPassword(c.UserContext(), in); err != nil {
		return writeError(c, err, "Failed to reset password")
	}
	return c.JSON(dto.MessageResponse{Message: "Password reset successful"})
}

// Delete godoc
// @Summary      Eliminar usuario (perfiles en cascada)
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "Database error")
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

// Register godoc
// @Summary      Registrar usuario desde el panel (multipart, imagen opcional)
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Nombre"
// @Param        email     formData  string  true   "Email"
// @Param        password  formData  string  true   "Contraseña"
// @Param        role      formData  string  true   "admin | vendor | customer"
// @Param        image     formData  file    false  "Imagen (jpeg, png, webp)"
// @Success      201  {object}  dto.RegisterResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	in.Image = ""
	out, err := h.authUC.RegisterWithImage(c.UserContext(), in, formImage(c))
	if err != nil {
		return registrationError(c, in.Role, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// formImage devuelve el archivo del campo "image" o nil si no vino.
func formImage(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}
