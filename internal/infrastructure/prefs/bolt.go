// Package prefs implementa el almacén local de preferencias (tema, configuración, sesión)
// sobre un archivo bbolt del dispositivo, sobre Redis o en memoria.
package prefs

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jhoicas/biciros/internal/domain/repository"
)

var _ repository.PreferenceStore = (*BoltStore)(nil)

var bucketName = []byte("preferences")

// BoltStore preferencias en un archivo bbolt; sobreviven a reinicios del proceso.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt abre (o crea) el archivo de preferencias en path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("abrir preferencias %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear bucket de preferencias: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			value, ok = string(v), true // copia: v solo es válido dentro de la transacción
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("leer preferencia %s: %w", key, err)
	}
	return value, ok, nil
}

func (s *BoltStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("guardar preferencia %s: %w", key, err)
	}
	return nil
}

func (s *BoltStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("borrar preferencia %s: %w", key, err)
	}
	return nil
}

// Close cierra el archivo.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
