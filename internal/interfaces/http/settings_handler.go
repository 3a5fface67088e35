package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biciros/internal/application/dto"
	"github.com/jhoicas/biciros/internal/application/settings"
	"github.com/jhoicas/biciros/internal/application/theme"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// SettingsHandler preferencias de la instalación y tema.
type SettingsHandler struct {
	settings *settings.Hook
	theme    *theme.Hook
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(s *settings.Hook, t *theme.Hook) *SettingsHandler {
	return &SettingsHandler{settings: s, theme: t}
}

// Get GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.current())
}

// Patch cambia varios campos a la vez.
// PATCH /api/settings
func (h *SettingsHandler) Patch(c *fiber.Ctx) error {
	var patch entity.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.settings.Update(c.UserContext(), patch); err != nil {
		return fail(c, err)
	}
	return c.JSON(h.current())
}

// Put cambia un único campo por su nombre guardado, p. ej. PUT /api/settings/nombreNegocio.
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var in dto.SetSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Value == nil {
		return badRequest(c, &dto.ErrorResponse{Code: "VALIDATION", Message: "value es requerido"})
	}
	if err := h.settings.Set(c.UserContext(), c.Params("key"), in.Value); err != nil {
		return fail(c, err)
	}
	return c.JSON(h.current())
}

// Reset vuelve a los valores de fábrica.
// POST /api/settings/reset
func (h *SettingsHandler) Reset(c *fiber.Ctx) error {
	if err := h.settings.Reset(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return c.JSON(h.current())
}

func (h *SettingsHandler) current() dto.SettingsResponse {
	return dto.SettingsResponse{Settings: h.settings.Current(), Loading: h.settings.Loading()}
}

// GetTheme GET /api/theme
func (h *SettingsHandler) GetTheme(c *fiber.Ctx) error {
	return c.JSON(h.themeResponse())
}

// ToggleTheme alterna oscuro/claro. Un fallo al guardar no se reporta: el modo ya cambió.
// POST /api/theme/toggle
func (h *SettingsHandler) ToggleTheme(c *fiber.Ctx) error {
	h.theme.Toggle(c.UserContext())
	return c.JSON(h.themeResponse())
}

// PutTheme PUT /api/theme
func (h *SettingsHandler) PutTheme(c *fiber.Ctx) error {
	var in dto.SetThemeRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	h.theme.SetDark(c.UserContext(), in.Mode == theme.ModeDark)
	return c.JSON(h.themeResponse())
}

func (h *SettingsHandler) themeResponse() dto.ThemeResponse {
	return dto.ThemeResponse{Mode: h.theme.Mode(), DarkMode: h.theme.IsDark(), Palette: h.theme.Palette()}
}
