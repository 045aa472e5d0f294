package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

const dayLayout = "2006-01-02"

// catalog operaciones comunes sobre un Store genérico (id + marcas de tiempo + existencia).
type catalog[T any, PT interface {
	*T
	entity.Record
}] struct {
	repo repository.Store[T]
	now  func() time.Time
}

func newCatalog[T any, PT interface {
	*T
	entity.Record
}](repo repository.Store[T]) catalog[T, PT] {
	return catalog[T, PT]{repo: repo, now: time.Now}
}

func (c catalog[T, PT]) get(ctx context.Context, id string) (*T, error) {
	rec, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (c catalog[T, PT]) save(ctx context.Context, rec *T) error {
	PT(rec).Stamp(uuid.New().String(), c.now())
	return c.repo.Upsert(ctx, rec)
}

func (c catalog[T, PT]) delete(ctx context.Context, id string) error {
	if _, err := c.get(ctx, id); err != nil {
		return err
	}
	return c.repo.Delete(ctx, id)
}

func mapAll[T any, R any](list []*T, fn func(*T) R) []R {
	out := make([]R, 0, len(list))
	for _, x := range list {
		out = append(out, fn(x))
	}
	return out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// parseDay lee YYYY-MM-DD. Vacío devuelve nil.
func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return nil, invalid("fecha inválida %q (se espera YYYY-MM-DD)", s)
	}
	return &t, nil
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dayLayout)
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
