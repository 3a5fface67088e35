package dto

import "github.com/jhoicas/biciros/internal/domain/entity"

// SettingsResponse preferencias actuales.
type SettingsResponse struct {
	Settings entity.AppSettings `json:"settings"`
	Loading  bool               `json:"loading"`
}

// SetSettingRequest valor de un único campo (PUT /api/settings/:key). false y "" son valores válidos.
type SetSettingRequest struct {
	Value any `json:"value"`
}

// ThemeResponse modo actual y su paleta.
type ThemeResponse struct {
	Mode     string         `json:"mode"`
	DarkMode bool           `json:"darkMode"`
	Palette  entity.Palette `json:"palette"`
}

// SetThemeRequest fija el modo.
type SetThemeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=dark light"`
}
