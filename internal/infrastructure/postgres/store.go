package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganancias-api/internal/domain"
)

// table describe cómo se guarda una entidad T: una fila R (struct snake_case con tags db) y las
// dos conversiones, que se aplican exactamente una vez por dirección.
type table[T any, R any] struct {
	name    string
	columns []string // la primera es la clave primaria "id"
	orderBy string
	// toExternal entidad → fila; args devuelve los valores en el orden de columns.
	toExternal func(*T) (R, error)
	args       func(R) []any
	// toInternal fila → entidad.
	toInternal func(R) (*T, error)
}

// Store implementación genérica de repository.Store[T] sobre pgx.
type Store[T any, R any] struct {
	q Querier
	t table[T, R]
}

func newStore[T any, R any](q Querier, t table[T, R]) *Store[T, R] {
	return &Store[T, R]{q: q, t: t}
}

func (s *Store[T, R]) selectSQL() string {
	return "SELECT " + strings.Join(s.t.columns, ", ") + " FROM " + s.t.name
}

// GetAll lista todas las filas en el orden de la tabla.
func (s *Store[T, R]) GetAll(ctx context.Context) ([]*T, error) {
	return s.list(ctx, "", nil)
}

// GetByID devuelve (nil, nil) si no existe.
func (s *Store[T, R]) GetByID(ctx context.Context, id string) (*T, error) {
	return s.one(ctx, "id = $1", id)
}

// Upsert inserta o reemplaza por id. Una violación de unicidad se reporta como domain.ErrDuplicate.
func (s *Store[T, R]) Upsert(ctx context.Context, rec *T) error {
	row, err := s.t.toExternal(rec)
	if err != nil {
		return fmt.Errorf("%s: codificar: %w", s.t.name, err)
	}
	cols := s.t.columns
	placeholders := make([]string, len(cols))
	updates := make([]string, 0, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if c != "id" && c != "created_at" {
			updates = append(updates, c+" = EXCLUDED."+c)
		}
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		s.t.name, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))
	if _, err := s.q.Exec(ctx, query, s.t.args(row)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, s.t.name)
		}
		return fmt.Errorf("upsert %s: %w", s.t.name, err)
	}
	return nil
}

// Delete elimina por id.
func (s *Store[T, R]) Delete(ctx context.Context, id string) error {
	if _, err := s.q.Exec(ctx, "DELETE FROM "+s.t.name+" WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete %s: %w", s.t.name, err)
	}
	return nil
}

// one primera fila que cumple where; (nil, nil) si no hay.
func (s *Store[T, R]) one(ctx context.Context, where string, args ...any) (*T, error) {
	rows, err := s.q.Query(ctx, s.selectSQL()+" WHERE "+where+" LIMIT 1", args...)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.t.name, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[R])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", s.t.name, err)
	}
	return s.t.toInternal(row)
}

// list filas que cumplen where (vacío = todas), ordenadas por orderBy.
func (s *Store[T, R]) list(ctx context.Context, where string, args []any) ([]*T, error) {
	query := s.selectSQL()
	if where != "" {
		query += " WHERE " + where
	}
	if s.t.orderBy != "" {
		query += " ORDER BY " + s.t.orderBy
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.t.name, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.t.name, err)
	}
	out := make([]*T, 0, len(records))
	for _, r := range records {
		e, err := s.t.toInternal(r)
		if err != nil {
			return nil, fmt.Errorf("%s: decodificar: %w", s.t.name, err)
		}
		out = append(out, e)
	}
	return out, nil
}
