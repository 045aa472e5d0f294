package repository

import (
	"context"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
)

// SettingRepository configuración de negocio clave/valor.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	Set(ctx context.Context, setting *entity.Setting) error
}
