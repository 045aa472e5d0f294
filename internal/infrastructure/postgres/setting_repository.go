package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo tabla settings (key PRIMARY KEY, value TEXT).
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador de configuración.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Get (nil, nil) si la clave no existe.
func (r *SettingRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var s entity.Setting
	err := r.q.QueryRow(ctx, `SELECT key, value, updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// Set inserta o reemplaza el valor.
func (r *SettingRepo) Set(ctx context.Context, s *entity.Setting) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, s.Key, s.Value, s.UpdatedAt); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}
