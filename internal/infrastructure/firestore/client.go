// Package firestore adapta Cloud Firestore a los puertos de almacenamiento: colecciones con
// consultas en vivo (snapshots) y el perfil de usuarios.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/pkg/config"
)

// NewClient abre el cliente de Firestore. Sin archivo de credenciales se usan las
// Application Default Credentials del entorno.
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: cliente: %w", err)
	}
	return client, nil
}

// mapError normaliza los códigos gRPC a errores de dominio.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case codes.PermissionDenied:
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	case codes.Unauthenticated:
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isCanceled indica si err proviene de cancelar el contexto de la consulta.
func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || status.Code(err) == codes.Canceled
}
