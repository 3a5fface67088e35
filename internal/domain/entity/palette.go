package entity

// Palette paleta de colores por rol semántico. Se deriva del modo oscuro, no se guarda.
type Palette struct {
	Background         string    `json:"background"`
	BackgroundGradient [3]string `json:"backgroundGradient"`
	CardBackground     string    `json:"cardBackground"`
	CardBackgroundAlt  string    `json:"cardBackgroundAlt"`
	TextPrimary        string    `json:"textPrimary"`
	TextSecondary      string    `json:"textSecondary"`
	TextMuted          string    `json:"textMuted"`
	Primary            string    `json:"primary"`
	PrimaryGradient    [2]string `json:"primaryGradient"`
	Success            string    `json:"success"`
	Warning            string    `json:"warning"`
	Error              string    `json:"error"`
	Info               string    `json:"info"`
	Border             string    `json:"border"`
	NavBackground      [2]string `json:"navBackground"`
	NavText            string    `json:"navText"`
	NavTextActive      string    `json:"navTextActive"`
}

// DarkPalette tema oscuro.
var DarkPalette = Palette{
	Background:         "#0d1117",
	BackgroundGradient: [3]string{"#2a4a6a", "#1a2332", "#0d1117"},
	CardBackground:     "rgba(51, 65, 85, 0.6)",
	CardBackgroundAlt:  "rgba(30, 41, 59, 0.5)",
	TextPrimary:        "#fff",
	TextSecondary:      "#94a3b8",
	TextMuted:          "#64748b",
	Primary:            "#6366f1",
	PrimaryGradient:    [2]string{"#6366f1", "#4f46e5"},
	Success:            "#34d399",
	Warning:            "#fbbf24",
	Error:              "#ef4444",
	Info:               "#3b82f6",
	Border:             "rgba(255, 255, 255, 0.1)",
	NavBackground:      [2]string{"rgba(17, 24, 39, 0.95)", "rgba(0, 0, 0, 0.95)"},
	NavText:            "#64748b",
	NavTextActive:      "#3b82f6",
}

// LightPalette tema claro.
var LightPalette = Palette{
	Background:         "#f8fafc",
	BackgroundGradient: [3]string{"#e2e8f0", "#f1f5f9", "#f8fafc"},
	CardBackground:     "rgba(255, 255, 255, 0.9)",
	CardBackgroundAlt:  "rgba(241, 245, 249, 0.9)",
	TextPrimary:        "#1e293b",
	TextSecondary:      "#475569",
	TextMuted:          "#94a3b8",
	Primary:            "#6366f1",
	PrimaryGradient:    [2]string{"#6366f1", "#4f46e5"},
	Success:            "#10b981",
	Warning:            "#f59e0b",
	Error:              "#ef4444",
	Info:               "#3b82f6",
	Border:             "rgba(0, 0, 0, 0.1)",
	NavBackground:      [2]string{"rgba(255, 255, 255, 0.98)", "rgba(248, 250, 252, 0.98)"},
	NavText:            "#64748b",
	NavTextActive:      "#6366f1",
}

// PaletteFor devuelve la paleta correspondiente al modo.
func PaletteFor(darkMode bool) Palette {
	if darkMode {
		return DarkPalette
	}
	return LightPalette
}
