// Package settings lee la configuración de negocio guardada en la base (umbral de envío
// gratis, descuentos rápidos) a través de un caché con TTL inyectado.
package settings

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// DefaultTTL tiempo de vida por defecto de una entrada.
const DefaultTTL = 60 * time.Second

// Cache caché en proceso por clave de setting. No se entera de escrituras externas:
// un cambio hecho desde otra instancia tarda hasta un TTL en verse.
type Cache struct {
	repo repository.SettingRepository
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	setting *entity.Setting // nil = la clave no existe (también se cachea)
	expires time.Time
}

// Option configura el caché.
type Option func(*Cache)

// WithClock reemplaza el reloj (tests deterministas).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// NewCache construye el caché. ttl <= 0 usa DefaultTTL.
func NewCache(repo repository.SettingRepository, ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{repo: repo, ttl: ttl, now: time.Now, entries: make(map[string]cacheEntry)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get devuelve el setting (nil si no existe). Los errores del repositorio no se cachean.
func (c *Cache) Get(ctx context.Context, key string) (*entity.Setting, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Before(e.expires) {
		return e.setting, nil
	}

	s, err := c.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{setting: s, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return s, nil
}

// Invalidate descarta una clave.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll vacía el caché.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
