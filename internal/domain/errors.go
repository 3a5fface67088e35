package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrNoSession      = errors.New("no hay sesión activa")
	ErrAlreadyMounted = errors.New("la suscripción ya está activa")
	ErrNotMounted     = errors.New("la suscripción no está activa")
	ErrClosed         = errors.New("el recurso ya fue cerrado")

	// ErrSubscriptionSetup se usa cuando la consulta en vivo no pudo configurarse
	// (colección o campo de orden vacíos, cliente no inicializado).
	ErrSubscriptionSetup = errors.New("error al configurar la conexión con el almacén")
)
