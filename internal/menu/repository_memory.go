package menu

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"menuboard/internal/core"
	"menuboard/internal/schedule"

	"github.com/google/uuid"
)

// MemoryRepository keeps menus in process. Used by tests and schedulectl.
type MemoryRepository struct {
	mu        sync.RWMutex
	menus     map[string]*Menu
	order     []string
	schedules map[string][]schedule.Schedule
	now       func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		menus:     make(map[string]*Menu),
		schedules: make(map[string][]schedule.Schedule),
		now:       time.Now,
	}
}

func (r *MemoryRepository) CreateMenu(_ context.Context, m *Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = StatusDraft
	}
	m.UpdatedAt = r.now()

	cp := *m
	cp.Schedules = nil
	r.menus[m.ID] = &cp
	r.order = append(r.order, m.ID)

	for _, s := range m.Schedules {
		s.MenuID = m.ID
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		r.schedules[m.ID] = append(r.schedules[m.ID], s)
	}
	return nil
}

func (r *MemoryRepository) UpdateMenu(_ context.Context, m *Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.menus[m.ID]
	if !ok {
		return core.ErrNotFound
	}
	existing.Name = m.Name
	existing.Status = m.Status
	existing.SortOrder = m.SortOrder
	existing.UpdatedAt = r.now()
	m.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *MemoryRepository) GetMenu(_ context.Context, id string) (*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.menus[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := r.withSchedules(m)
	return &cp, nil
}

func (r *MemoryRepository) ListPublished(_ context.Context, venueID string) ([]Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Menu
	for _, id := range r.order {
		m := r.menus[id]
		if m.VenueID == venueID && m.Status == StatusPublished {
			out = append(out, r.withSchedules(m))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *MemoryRepository) ListSchedules(_ context.Context, menuID string) ([]schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.menus[menuID]; !ok {
		return nil, core.ErrNotFound
	}
	return slices.Clone(r.schedules[menuID]), nil
}

func (r *MemoryRepository) CreateSchedule(_ context.Context, s *schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.menus[s.MenuID]
	if !ok {
		return core.ErrNotFound
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	r.schedules[s.MenuID] = append(r.schedules[s.MenuID], *s)
	m.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepository) UpdateSchedule(_ context.Context, s *schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.schedules[s.MenuID]
	for i := range list {
		if list[i].ID == s.ID {
			list[i] = *s
			r.menus[s.MenuID].UpdatedAt = r.now()
			return nil
		}
	}
	return core.ErrNotFound
}

func (r *MemoryRepository) DeleteSchedule(_ context.Context, menuID string, scheduleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.schedules[menuID]
	for i := range list {
		if list[i].ID == scheduleID {
			r.schedules[menuID] = slices.Delete(slices.Clone(list), i, i+1)
			r.menus[menuID].UpdatedAt = r.now()
			return nil
		}
	}
	return core.ErrNotFound
}

func (r *MemoryRepository) withSchedules(m *Menu) Menu {
	cp := *m
	cp.Schedules = slices.Clone(r.schedules[m.ID])
	return cp
}
