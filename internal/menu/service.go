package menu

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"menuboard/internal/core"
	"menuboard/internal/metrics"
	"menuboard/internal/schedule"

	"github.com/rs/zerolog"
)

var (
	ErrMissingName   = errors.New("menu name is required")
	ErrInvalidStatus = errors.New("status must be DRAFT or PUBLISHED")
	ErrNoVisibleMenu = errors.New("no menu is visible right now")
)

type Service struct {
	repo    Repository
	venues  core.VenueReader
	cache   Cache
	metrics *metrics.Metrics
	clock   schedule.Clock
	log     zerolog.Logger
}

func NewService(
	repo Repository,
	venues core.VenueReader,
	cache Cache,
	m *metrics.Metrics,
	clock schedule.Clock,
	log zerolog.Logger,
) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	return &Service{
		repo:    repo,
		venues:  venues,
		cache:   cache,
		metrics: m,
		clock:   clock,
		log:     log.With().Str("component", "menu").Logger(),
	}
}

// --------------------------------------------------
// Public menu page
// --------------------------------------------------

// PublicMenus returns the venue's published menus that are visible right
// now, evaluated on the venue's local clock.
func (s *Service) PublicMenus(ctx context.Context, slug string) (*PublicPage, error) {
	venueID, loc, err := s.venues.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.VisibleMenus(ctx, venueID, s.clock.Now().In(loc))
}

// VisibleMenus evaluates a venue's published menus at now. The caller has
// already moved now into the venue's timezone.
func (s *Service) VisibleMenus(ctx context.Context, venueID string, now time.Time) (*PublicPage, error) {
	menus, err := s.publishedMenus(ctx, venueID)
	if err != nil {
		return nil, err
	}

	visible := schedule.FilterVisible(menus, now)
	s.metrics.ObserveVisibility(len(visible), len(menus))

	return &PublicPage{
		VenueID:     venueID,
		EvaluatedAt: now,
		Menus:       visible,
	}, nil
}

// PrimaryMenu picks the one menu to open by default. Among visible menus the
// one whose active schedule has the highest priority wins; menus without
// schedules count as priority 0. Ties go to the lower sort order, then the
// most recently updated menu.
func (s *Service) PrimaryMenu(ctx context.Context, slug string) (*Menu, *schedule.Schedule, error) {
	page, err := s.PublicMenus(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	m, active, ok := pickPrimary(page.Menus, page.EvaluatedAt)
	if !ok {
		return nil, nil, ErrNoVisibleMenu
	}
	return &m, active, nil
}

type ranked struct {
	menu     Menu
	active   *schedule.Schedule
	priority int
}

func pickPrimary(menus []Menu, now time.Time) (Menu, *schedule.Schedule, bool) {
	candidates := make([]ranked, 0, len(menus))
	for _, m := range menus {
		if len(m.Schedules) == 0 {
			candidates = append(candidates, ranked{menu: m})
			continue
		}
		if s, ok := schedule.ActiveSchedule(m.Schedules, now); ok {
			candidates = append(candidates, ranked{menu: m, active: &s, priority: s.Priority})
		}
	}
	if len(candidates) == 0 {
		return Menu{}, nil, false
	}

	slices.SortStableFunc(candidates, func(a, b ranked) int {
		if c := cmp.Compare(b.priority, a.priority); c != 0 {
			return c
		}
		if c := cmp.Compare(a.menu.SortOrder, b.menu.SortOrder); c != 0 {
			return c
		}
		return b.menu.UpdatedAt.Compare(a.menu.UpdatedAt)
	})

	best := candidates[0]
	return best.menu, best.active, true
}

func (s *Service) publishedMenus(ctx context.Context, venueID string) ([]Menu, error) {
	menus, ok, err := s.cache.Get(ctx, venueID)
	switch {
	case err != nil:
		s.metrics.CacheResult("error")
		s.log.Warn().Err(err).Str("venue_id", venueID).Msg("menu cache read failed")
	case ok:
		s.metrics.CacheResult("hit")
		return menus, nil
	default:
		s.metrics.CacheResult("miss")
	}

	menus, err = s.repo.ListPublished(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("list published menus: %w", err)
	}

	if err := s.cache.Set(ctx, venueID, menus); err != nil {
		s.log.Warn().Err(err).Str("venue_id", venueID).Msg("menu cache write failed")
	}
	return menus, nil
}

// --------------------------------------------------
// Dashboard: menus
// --------------------------------------------------
func (s *Service) CreateMenu(ctx context.Context, userID, venueID, name string, sortOrder int) (*Menu, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}
	if err := s.requireMember(ctx, venueID, userID); err != nil {
		return nil, err
	}

	m := &Menu{
		VenueID:   venueID,
		Name:      name,
		Status:    StatusDraft,
		SortOrder: sortOrder,
	}
	if err := s.repo.CreateMenu(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateMenu(ctx context.Context, userID, menuID string, upd MenuUpdate) (*Menu, error) {
	m, err := s.authorizedMenu(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, ErrMissingName
		}
		m.Name = name
	}
	if upd.Status != nil {
		if *upd.Status != StatusDraft && *upd.Status != StatusPublished {
			return nil, ErrInvalidStatus
		}
		m.Status = *upd.Status
	}
	if upd.SortOrder != nil {
		m.SortOrder = *upd.SortOrder
	}

	if err := s.repo.UpdateMenu(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx, m.VenueID)

	s.log.Info().Str("menu_id", m.ID).Str("status", m.Status).Msg("menu updated")
	return m, nil
}

// Visibility previews a menu at the given instant, or now when at is nil.
// Time-of-day and weekday rules use the venue's timezone.
func (s *Service) Visibility(ctx context.Context, userID, menuID string, at *time.Time) (*Visibility, error) {
	m, err := s.authorizedMenu(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}

	loc, err := s.venues.Location(ctx, m.VenueID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if at != nil {
		now = *at
	}
	now = now.In(loc)

	v := &Visibility{
		MenuID:      m.ID,
		Visible:     schedule.IsMenuVisible(m.Schedules, now),
		EvaluatedAt: now,
	}
	if active, ok := schedule.ActiveSchedule(m.Schedules, now); ok {
		v.ActiveSchedule = &active
	}
	return v, nil
}

// --------------------------------------------------
// Dashboard: schedules
// --------------------------------------------------
func (s *Service) ListSchedules(ctx context.Context, userID, menuID string) ([]schedule.Schedule, error) {
	m, err := s.authorizedMenu(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}
	return m.Schedules, nil
}

func (s *Service) AddSchedule(ctx context.Context, userID, menuID string, sc schedule.Schedule) (*schedule.Schedule, error) {
	m, err := s.authorizedMenu(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(sc); err != nil {
		return nil, err
	}

	sc.ID = ""
	sc.MenuID = m.ID
	if err := s.repo.CreateSchedule(ctx, &sc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, m.VenueID)

	s.log.Info().
		Str("menu_id", m.ID).
		Str("schedule_id", sc.ID).
		Str("schedule_type", string(sc.Type)).
		Msg("schedule added")
	return &sc, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, userID, menuID, scheduleID string, sc schedule.Schedule) (*schedule.Schedule, error) {
	m, err := s.authorizedMenu(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(sc); err != nil {
		return nil, err
	}

	sc.ID = scheduleID
	sc.MenuID = m.ID
	if err := s.repo.UpdateSchedule(ctx, &sc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, m.VenueID)
	return &sc, nil
}

func (s *Service) RemoveSchedule(ctx context.Context, userID, menuID, scheduleID string) error {
	m, err := s.authorizedMenu(ctx, userID, menuID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSchedule(ctx, m.ID, scheduleID); err != nil {
		return err
	}
	s.invalidate(ctx, m.VenueID)
	return nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------
func (s *Service) authorizedMenu(ctx context.Context, userID, menuID string) (*Menu, error) {
	m, err := s.repo.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, m.VenueID, userID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) requireMember(ctx context.Context, venueID, userID string) error {
	ok, err := s.venues.IsMember(ctx, venueID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrForbidden
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, venueID string) {
	if err := s.cache.Invalidate(ctx, venueID); err != nil {
		s.log.Warn().Err(err).Str("venue_id", venueID).Msg("menu cache invalidate failed")
	}
}
