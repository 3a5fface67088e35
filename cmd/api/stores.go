package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biciros/internal/app"
	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
	infrafs "github.com/jhoicas/biciros/internal/infrastructure/firestore"
	"github.com/jhoicas/biciros/internal/infrastructure/memstore"
	"github.com/jhoicas/biciros/internal/infrastructure/postgres"
	"github.com/jhoicas/biciros/internal/infrastructure/prefs"
	"github.com/jhoicas/biciros/pkg/config"
	"github.com/jhoicas/biciros/pkg/logger"
)

// openStores abre el almacén de documentos, el de usuarios y el de preferencias según los
// drivers configurados. El cierre devuelto libera todo lo abierto.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (app.Stores, func(), error) {
	var (
		stores  app.Stores
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	admin, err := seedAdmin(cfg.Seed)
	if err != nil {
		return stores, closeAll, err
	}

	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return stores, closeAll, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		closers = append(closers, pool.Close)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			closeAll()
			return stores, func() {}, err
		}
		users := postgres.NewUserRepository(pool)
		if admin != nil {
			if err := users.Create(ctx, admin); err != nil && !errors.Is(err, domain.ErrDuplicate) {
				closeAll()
				return stores, func() {}, fmt.Errorf("crear administrador inicial: %w", err)
			}
		}
		stores.Documents = postgres.NewDocumentStore(pool, log)
		stores.Users = users

	case config.StoreFirestore:
		client, err := infrafs.NewClient(ctx, cfg.Firestore)
		if err != nil {
			return stores, closeAll, err
		}
		closers = append(closers, func() { _ = client.Close() })
		if admin != nil {
			log.Warn().Msg("SEED_ADMIN_* se ignora con firestore: los usuarios se administran en la consola")
		}
		stores.Documents = infrafs.NewDocumentStore(client, log)
		stores.Users = infrafs.NewUserRepository(client)

	default:
		users := memstore.NewUserRepo()
		if admin != nil {
			users.Add(admin)
		} else {
			log.Warn().Msg("almacén en memoria sin usuarios: defina SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD")
		}
		stores.Documents = memstore.New()
		stores.Users = users
	}

	p, closePrefs, err := openPrefs(ctx, cfg)
	if err != nil {
		closeAll()
		return stores, func() {}, err
	}
	closers = append(closers, closePrefs)
	stores.Prefs = p
	return stores, closeAll, nil
}

func openPrefs(ctx context.Context, cfg *config.Config) (repository.PreferenceStore, func(), error) {
	switch cfg.Prefs.Driver {
	case config.PrefsRedis:
		s, err := prefs.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case config.PrefsMemory:
		return prefs.NewMemory(), func() {}, nil
	default:
		s, err := prefs.OpenBolt(cfg.Prefs.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
}

// seedAdmin arma el administrador inicial; nil si no se configuró email y password.
func seedAdmin(cfg config.SeedConfig) (*entity.User, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		PasswordHash: string(hash),
		Name:         cfg.AdminName,
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
