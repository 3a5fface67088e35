package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biciros/internal/application/dto"
	"github.com/jhoicas/biciros/internal/domain"
)

// fail traduce un error de dominio a su respuesta HTTP.
func fail(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", err.Error()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva o acceso denegado"
	case errors.Is(err, domain.ErrNoSession):
		status, code = fiber.StatusConflict, "NO_SESSION"
	case errors.Is(err, domain.ErrSubscriptionSetup), errors.Is(err, domain.ErrClosed):
		status, code = fiber.StatusServiceUnavailable, "UNAVAILABLE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, e *dto.ErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(e)
}

// feedState estado de carga/error de un feed para acompañar un listado.
func feedState(loading bool, err error) dto.FeedState {
	st := dto.FeedState{Loading: loading}
	if err != nil {
		st.Error = err.Error()
	}
	return st
}
