package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biciros/internal/application/auth"
	"github.com/jhoicas/biciros/internal/application/dto"
)

// Sessions sesión del dispositivo (lo implementa *app.App).
type Sessions interface {
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Logout(ctx context.Context) (*auth.Session, error)
}

// AuthHandler maneja login, logout y el perfil del usuario autenticado.
type AuthHandler struct {
	sessions Sessions
}

// NewAuthHandler construye el handler.
func NewAuthHandler(sessions Sessions) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	sess, err := h.sessions.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: sess.Token, User: dto.ToUserResponse(sess.User)})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if _, err := h.sessions.Logout(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me devuelve el usuario del token y su perfil.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := GetUser(c)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado en el contexto"})
	}
	return c.JSON(dto.MeResponse{User: dto.ToUserResponse(*u), Profile: u.Profile()})
}
