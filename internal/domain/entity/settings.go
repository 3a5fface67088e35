package entity

// AppSettings preferencias de la instalación, guardadas como un único blob JSON.
type AppSettings struct {
	DarkMode bool `json:"darkMode" mapstructure:"darkMode"`

	NotifySales    bool `json:"notificacionesVentas" mapstructure:"notificacionesVentas"`
	NotifyStock    bool `json:"notificacionesStock" mapstructure:"notificacionesStock"`
	NotifyServices bool `json:"notificacionesServicios" mapstructure:"notificacionesServicios"`

	BusinessName    string `json:"nombreNegocio" mapstructure:"nombreNegocio"`
	BusinessAddress string `json:"direccionNegocio" mapstructure:"direccionNegocio"`
	BusinessPhone   string `json:"telefonoNegocio" mapstructure:"telefonoNegocio"`
}

// DefaultSettings valores de fábrica. Se usan al no existir blob guardado y para rellenar
// campos ausentes de un blob antiguo.
func DefaultSettings() AppSettings {
	return AppSettings{
		DarkMode:       true,
		NotifySales:    true,
		NotifyStock:    true,
		NotifyServices: true,
		BusinessName:   "BICIROS",
	}
}

// SettingsPatch actualización parcial de preferencias (merge superficial).
type SettingsPatch struct {
	DarkMode        *bool   `json:"darkMode,omitempty" mapstructure:"darkMode"`
	NotifySales     *bool   `json:"notificacionesVentas,omitempty" mapstructure:"notificacionesVentas"`
	NotifyStock     *bool   `json:"notificacionesStock,omitempty" mapstructure:"notificacionesStock"`
	NotifyServices  *bool   `json:"notificacionesServicios,omitempty" mapstructure:"notificacionesServicios"`
	BusinessName    *string `json:"nombreNegocio,omitempty" mapstructure:"nombreNegocio"`
	BusinessAddress *string `json:"direccionNegocio,omitempty" mapstructure:"direccionNegocio"`
	BusinessPhone   *string `json:"telefonoNegocio,omitempty" mapstructure:"telefonoNegocio"`
}

// Apply devuelve s con los campos presentes en p sobrescritos.
func (p SettingsPatch) Apply(s AppSettings) AppSettings {
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.NotifySales != nil {
		s.NotifySales = *p.NotifySales
	}
	if p.NotifyStock != nil {
		s.NotifyStock = *p.NotifyStock
	}
	if p.NotifyServices != nil {
		s.NotifyServices = *p.NotifyServices
	}
	if p.BusinessName != nil {
		s.BusinessName = *p.BusinessName
	}
	if p.BusinessAddress != nil {
		s.BusinessAddress = *p.BusinessAddress
	}
	if p.BusinessPhone != nil {
		s.BusinessPhone = *p.BusinessPhone
	}
	return s
}
