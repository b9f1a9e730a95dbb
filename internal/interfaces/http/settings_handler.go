package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/internal/application/usecase"
)

// SettingsHandler preferencias, perfil y contraseña del usuario autenticado.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Preferencias del usuario
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.PreferencesDTO}
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetPreferences(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar preferencias (parcial)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePreferencesRequest  true  "theme, notifications, language"
// @Success      200   {object}  dto.Envelope{data=dto.PreferencesDTO}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePreferencesRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdatePreferences(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Settings updated successfully", out))
}

// UpdateProfile godoc
// @Summary      Actualizar perfil
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "firstName, lastName, email"
// @Success      200   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/settings/profile [put]
func (h *SettingsHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Profile updated successfully", out))
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /api/settings/password [put]
func (h *SettingsHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Password changed successfully", nil))
}
