package sofas

import (
	"context"
	"sync"

	"configurator/internal/models"

	"github.com/google/uuid"
)

// MemoryRepository keeps sofas in process, in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	sofas map[string]models.Sofa
}

func NewMemoryRepository(seed []models.Sofa) *MemoryRepository {
	r := &MemoryRepository{sofas: make(map[string]models.Sofa, len(seed))}
	for i := range seed {
		r.insert(seed[i])
	}
	return r
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Sofa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Sofa, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.sofas[id]))
	}
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Sofa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sofas[id]
	if !ok {
		return nil, ErrNotFound
	}
	s = clone(s)
	return &s, nil
}

func (r *MemoryRepository) Create(ctx context.Context, sofa *models.Sofa) (*models.Sofa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.insert(clone(*sofa))
	return &s, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, update models.SofaUpdate) (*models.Sofa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sofas[id]
	if !ok {
		return nil, ErrNotFound
	}
	s = clone(s)
	update.Apply(&s)
	r.sofas[id] = s

	out := clone(s)
	return &out, nil
}

func (r *MemoryRepository) AppendImage(ctx context.Context, id, imageURL string) (*models.Sofa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sofas[id]
	if !ok {
		return nil, ErrNotFound
	}
	s = clone(s)
	s.Images = append(s.Images, imageURL)
	r.sofas[id] = s

	out := clone(s)
	return &out, nil
}

func (r *MemoryRepository) Filter(ctx context.Context, f Filter) ([]models.Sofa, error) {
	all, _ := r.List(ctx)
	out := make([]models.Sofa, 0, len(all))
	for _, s := range all {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

// insert must be called with the lock held or before the repository is shared.
func (r *MemoryRepository) insert(s models.Sofa) models.Sofa {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	if _, exists := r.sofas[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.sofas[s.ID] = s
	return clone(s)
}

func clone(s models.Sofa) models.Sofa {
	s.Images = append([]string{}, s.Images...)
	if s.Features != nil {
		s.Features = append([]string{}, s.Features...)
	}
	if s.Description != nil {
		d := *s.Description
		s.Description = &d
	}
	return s
}
