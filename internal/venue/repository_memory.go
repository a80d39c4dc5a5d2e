package venue

import (
	"context"
	"sort"
	"sync"
	"time"

	"menuboard/internal/core"

	"github.com/google/uuid"
)

// MemoryRepository keeps venues in process. Used by tests and schedulectl.
type MemoryRepository struct {
	mu      sync.RWMutex
	venues  map[string]*Venue
	members map[string]map[string]bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		venues:  make(map[string]*Venue),
		members: make(map[string]map[string]bool),
	}
}

func (r *MemoryRepository) Create(_ context.Context, v *Venue, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.venues {
		if existing.Slug == v.Slug {
			return ErrSlugTaken
		}
	}

	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	v.CreatedAt = time.Now()

	cp := *v
	r.venues[v.ID] = &cp
	r.members[v.ID] = map[string]bool{ownerID: true}
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.venues[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.venues {
		if v.Slug == slug {
			cp := *v
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *MemoryRepository) ListByMember(_ context.Context, userID string) ([]*Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Venue
	for id, m := range r.members {
		if m[userID] {
			cp := *r.venues[id]
			out = append(out, &cp)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]*Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Venue, 0, len(r.venues))
	for _, v := range r.venues {
		cp := *v
		out = append(out, &cp)
	}
	sortByCreated(out)
	return out, nil
}

func (r *MemoryRepository) IsMember(_ context.Context, venueID string, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.members[venueID][userID], nil
}

func (r *MemoryRepository) AddMember(_ context.Context, venueID string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.venues[venueID]; !ok {
		return core.ErrNotFound
	}
	r.members[venueID][userID] = true
	return nil
}

func sortByCreated(vs []*Venue) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].CreatedAt.Equal(vs[j].CreatedAt) {
			return vs[i].Slug < vs[j].Slug
		}
		return vs[i].CreatedAt.Before(vs[j].CreatedAt)
	})
}
