// Package redis guarda las sesiones de importación de Salla entre peticiones.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Ganancias-api/internal/application/salla"
)

const (
	// SessionKeyPrefix prefijo de las claves de sesión.
	SessionKeyPrefix = "salla_import:"
	// DefaultSessionTTL vida de una sesión sin actividad.
	DefaultSessionTTL = 2 * time.Hour
)

var _ salla.SessionStore = (*ImportSessionStore)(nil)

// ImportSessionStore implementa salla.SessionStore sobre Redis (JSON con TTL renovado en cada escritura).
type ImportSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewImportSessionStore construye el store. ttl <= 0 usa DefaultSessionTTL.
func NewImportSessionStore(client *redis.Client, ttl time.Duration) *ImportSessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &ImportSessionStore{client: client, ttl: ttl}
}

// Get devuelve (nil, nil) si la sesión no existe o expiró.
func (s *ImportSessionStore) Get(ctx context.Context, id string) (*salla.Session, error) {
	val, err := s.client.Get(ctx, SessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: leer sesión: %w", err)
	}
	var session salla.Session
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("redis: decodificar sesión: %w", err)
	}
	return &session, nil
}

// Save guarda la sesión completa.
func (s *ImportSessionStore) Save(ctx context.Context, session *salla.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: codificar sesión: %w", err)
	}
	if err := s.client.Set(ctx, SessionKeyPrefix+session.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar sesión: %w", err)
	}
	return nil
}

// Delete elimina la sesión.
func (s *ImportSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis: eliminar sesión: %w", err)
	}
	return nil
}

// NewClient abre el cliente desde una URL redis:// y verifica la conexión.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}
