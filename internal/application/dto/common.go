package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FeedState estado de la suscripción que respalda un listado.
type FeedState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// CreatedResponse salida de un alta: id generado por el almacén.
type CreatedResponse struct {
	ID string `json:"id"`
}
