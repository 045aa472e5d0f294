package salla

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/sallacsv"
)

// State etapa de una importación: upload → preview → importing → complete, sin retrocesos
// salvo el reinicio completo a upload.
type State string

const (
	StateUpload    State = "upload"
	StatePreview   State = "preview"
	StateImporting State = "importing"
	StateComplete  State = "complete"
)

// Outcome resultado de confirmar una importación (números de pedido).
type Outcome struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
}

// Session importación en curso. Se guarda entre peticiones (Redis o memoria).
type Session struct {
	ID        string          `json:"id"`
	State     State           `json:"state"`
	FileName  string          `json:"file_name"`
	Parsed    sallacsv.Result `json:"parsed"`
	Preview   Preview         `json:"preview"`
	Outcome   *Outcome        `json:"outcome,omitempty"`
	Error     string          `json:"error,omitempty"` // fallo de la última importación; se limpia con Reset
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// transitions movimientos permitidos. Si la transacción falla la sesión queda en importing
// con el error registrado hasta que se reinicia.
var transitions = map[State][]State{
	StateUpload:    {StatePreview},
	StatePreview:   {StatePreview, StateImporting},
	StateImporting: {StateComplete},
	StateComplete:  {},
}

// moveTo aplica una transición o devuelve ErrImportState. El reinicio a upload siempre se permite.
func (s *Session) moveTo(next State, now time.Time) error {
	if next != StateUpload {
		allowed := false
		for _, st := range transitions[s.State] {
			if st == next {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: %s → %s", domain.ErrImportState, s.State, next)
		}
	}
	s.State = next
	s.UpdatedAt = now
	return nil
}

// SessionStore persistencia de sesiones de importación. Get devuelve (nil, nil) si no existe o expiró.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore SessionStore en proceso, para desarrollo y tests.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session Session
	expires time.Time
}

// NewMemoryStore crea el store. ttl <= 0 = sin expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

// Save guarda una copia de la sesión.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{session: *s}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.sessions[s.ID] = e
	return nil
}

// Get devuelve una copia de la sesión.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.sessions, id)
		return nil, nil
	}
	s := e.session
	return &s, nil
}

// Delete elimina la sesión.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
