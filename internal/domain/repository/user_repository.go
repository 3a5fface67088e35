package repository

import (
	"context"

	"github.com/jhoicas/biciros/internal/domain/entity"
)

// UserRepository puerto de lectura de usuarios y perfiles para autenticación.
// Devuelve (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
