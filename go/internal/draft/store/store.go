// Package store keeps draft snapshots and serialises changes to each draft.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// ErrNotFound is returned when no draft exists for an id.
var ErrNotFound = errors.New("draft not found")

// UpdateFunc derives the next snapshot from the current one. Returning an
// error leaves the stored snapshot untouched.
type UpdateFunc func(current *models.DraftState) (*models.DraftState, error)

// Repository is what the orchestrator needs from draft storage.
type Repository interface {
	Create(ctx context.Context, state *models.DraftState) error
	Get(ctx context.Context, id uuid.UUID) (*models.DraftState, error)
	Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*models.DraftState, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entry struct {
	mu      sync.Mutex
	state   *models.DraftState
	deleted bool
}

// Memory is an in-process Repository. Reads are served from copies, and
// Update holds a per-draft lock for the whole read-apply-write.
type Memory struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*entry
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{drafts: make(map[uuid.UUID]*entry)}
}

// Create stores a new draft.
func (m *Memory) Create(ctx context.Context, state *models.DraftState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.drafts[state.ID]; exists {
		return fmt.Errorf("draft %s already exists", state.ID)
	}
	stored := state.Clone()
	if stored.Version == 0 {
		stored.Version = 1
	}
	m.drafts[state.ID] = &entry{state: stored}
	return nil
}

// Get returns a copy of the latest snapshot.
func (m *Memory) Get(ctx context.Context, id uuid.UUID) (*models.DraftState, error) {
	e, err := m.entry(ctx, id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ErrNotFound
	}
	return e.state.Clone(), nil
}

// Update applies fn to the current snapshot while holding the draft's lock.
// The stored version is bumped on every successful write.
func (m *Memory) Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*models.DraftState, error) {
	e, err := m.entry(ctx, id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ErrNotFound
	}

	next, err := fn(e.state.Clone())
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, errors.New("update returned no snapshot")
	}

	stored := next.Clone()
	stored.Version = e.state.Version + 1
	e.state = stored
	return stored.Clone(), nil
}

// Delete removes a draft.
func (m *Memory) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	e, ok := m.drafts[id]
	delete(m.drafts, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()
	return nil
}

// Len returns the number of stored drafts.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.drafts)
}

func (m *Memory) entry(ctx context.Context, id uuid.UUID) (*entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}
