// Package memory implementa los puertos de persistencia en memoria. Lo usan los tests de los
// casos de uso y la herramienta salla_preview para conciliar sin base de datos.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// Store repository.Store genérico sobre un mapa. GetAll respeta el orden de inserción.
type Store[T any, PT interface {
	*T
	entity.Record
}] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

var _ repository.Store[entity.Product] = (*Store[entity.Product, *entity.Product])(nil)

// NewStore crea un store vacío.
func NewStore[T any, PT interface {
	*T
	entity.Record
}]() *Store[T, PT] {
	return &Store[T, PT]{items: make(map[string]T)}
}

// GetAll devuelve copias de todos los registros.
func (s *Store[T, PT]) GetAll(_ context.Context) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.order))
	for _, id := range s.order {
		v := s.items[id]
		out = append(out, &v)
	}
	return out, nil
}

// GetByID devuelve una copia o (nil, nil).
func (s *Store[T, PT]) GetByID(_ context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// Upsert inserta o reemplaza por Key().
func (s *Store[T, PT]) Upsert(_ context.Context, rec *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := PT(rec).Key()
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = *rec
	return nil
}

// Delete elimina por id (no falla si no existe).
func (s *Store[T, PT]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, x := range s.order {
		if x == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// find primer registro que cumple match.
func (s *Store[T, PT]) find(match func(*T) bool) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		v := s.items[id]
		if match(&v) {
			return &v
		}
	}
	return nil
}

// filter registros que cumplen match, en orden de inserción.
func (s *Store[T, PT]) filter(match func(*T) bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*T
	for _, id := range s.order {
		v := s.items[id]
		if match(&v) {
			out = append(out, &v)
		}
	}
	return out
}

func (s *Store[T, PT]) snapshot() (map[string]T, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make(map[string]T, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	return items, append([]string(nil), s.order...)
}

func (s *Store[T, PT]) restore(items map[string]T, order []string) {
	s.mu.Lock()
	s.items, s.order = items, order
	s.mu.Unlock()
}
