package analysis

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for analysis persistence.
type Repository interface {
	// Create stores a finished analysis record.
	Create(ctx context.Context, rec *Record) error

	// List returns the newest analyses for a user, newest first.
	List(ctx context.Context, userID string, limit int) ([]*Summary, error)

	// Get retrieves one analysis owned by the user.
	Get(ctx context.Context, userID, id string) (*Record, error)

	// Delete removes one analysis owned by the user.
	Delete(ctx context.Context, userID, id string) error
}

// InMemoryRepository is an in-memory implementation of Repository for
// local development and tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewInMemoryRepository creates a new in-memory analysis repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*Record),
	}
}

// Create stores a finished analysis record.
func (r *InMemoryRepository) Create(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rec
	stored.Payload = append([]byte(nil), rec.Payload...)
	r.records[rec.ID] = &stored
	return nil
}

// List returns the newest analyses for a user, newest first.
func (r *InMemoryRepository) List(_ context.Context, userID string, limit int) ([]*Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Summary
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		out = append(out, &Summary{
			ID:                 rec.ID,
			CurrentAddress:     rec.CurrentAddress,
			DestinationAddress: rec.DestinationAddress,
			OverallScore:       rec.OverallScore,
			Grade:              rec.Grade,
			CreatedAt:          rec.CreatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Get retrieves one analysis owned by the user.
func (r *InMemoryRepository) Get(_ context.Context, userID, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}

	out := *rec
	out.Payload = append([]byte(nil), rec.Payload...)
	return &out, nil
}

// Delete removes one analysis owned by the user.
func (r *InMemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return ErrNotFound
	}

	delete(r.records, id)
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
