package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/biciros/internal/domain/document"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// Colección y campos del perfil de usuario.
const (
	usersCollection   = "users"
	userFieldEmail    = "email"
	userFieldName     = "nombre"
	userFieldRole     = "rol"
	userFieldStatus   = "estado"
	userFieldPassword = "password_hash"
	userFieldCreated  = "createdAt"
	userFieldUpdated  = "updatedAt"
)

// UserRepo perfiles de usuario en la colección "users".
type UserRepo struct {
	client *firestore.Client
}

// NewUserRepository construye el adaptador.
func NewUserRepository(client *firestore.Client) *UserRepo {
	return &UserRepo{client: client}
}

// FindByEmail busca el perfil por email; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	it := r.client.Collection(usersCollection).
		Where(userFieldEmail, "==", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Documents(ctx)
	defer it.Stop()
	ds, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get user by email", err)
	}
	return toUser(ds.Ref.ID, ds.Data()), nil
}

// FindByID lee el perfil por id de documento; (nil, nil) si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	ds, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get user by id", err)
	}
	return toUser(ds.Ref.ID, ds.Data()), nil
}

// toUser rellena los campos ausentes: rol "vendedor" y estado activo.
func toUser(id string, data map[string]any) *entity.User {
	r := document.Read(data)
	now := time.Now()
	return &entity.User{
		ID:           id,
		Email:        r.String(userFieldEmail, ""),
		PasswordHash: r.String(userFieldPassword, ""),
		Name:         r.String(userFieldName, "Usuario"),
		Role:         r.String(userFieldRole, entity.RoleVendedor),
		Status:       r.String(userFieldStatus, entity.UserStatusActive),
		CreatedAt:    r.Time(userFieldCreated, now),
		UpdatedAt:    r.Time(userFieldUpdated, now),
	}
}
