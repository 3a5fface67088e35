package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria (modo local y pruebas).
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]*entity.User
	email map[string]string
}

// NewUserRepo crea el repositorio con los usuarios dados.
func NewUserRepo(users ...*entity.User) *UserRepo {
	r := &UserRepo{byID: map[string]*entity.User{}, email: map[string]string{}}
	for _, u := range users {
		r.Add(u)
	}
	return r
}

// Add agrega o reemplaza un usuario.
func (r *UserRepo) Add(u *entity.User) {
	if u == nil {
		return
	}
	cp := *u
	r.mu.Lock()
	r.byID[cp.ID] = &cp
	r.email[strings.ToLower(cp.Email)] = cp.ID
	r.mu.Unlock()
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.email[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
