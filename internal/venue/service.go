package venue

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"

	"menuboard/internal/core"
	"menuboard/internal/schedule"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidSlug     = errors.New("slug must be lowercase letters, digits and dashes")
	ErrInvalidTimezone = errors.New("unknown timezone")
	ErrSlugTaken       = errors.New("slug already in use")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	OrganizationID string
	Name           string
	Slug           string
	Timezone       string
}

// --------------------------------------------------
// Create venue
// --------------------------------------------------
func (s *Service) CreateVenue(ctx context.Context, in CreateInput, ownerID string) (*Venue, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if name == "" || slug == "" {
		return nil, ErrMissingFields
	}
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}

	org := in.OrganizationID
	if org == "" {
		org = ownerID
	}

	v := &Venue{
		OrganizationID: org,
		Name:           name,
		Slug:           slug,
		Timezone:       tz,
	}
	if err := s.repo.Create(ctx, v, ownerID); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListMyVenues(ctx context.Context, userID string) ([]*Venue, error) {
	return s.repo.ListByMember(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]*Venue, error) {
	return s.repo.ListAll(ctx)
}

// AddMember lets an existing member grant access to another user.
func (s *Service) AddMember(ctx context.Context, venueID, actorID, userID string) error {
	ok, err := s.repo.IsMember(ctx, venueID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrForbidden
	}
	return s.repo.AddMember(ctx, venueID, userID)
}

// --------------------------------------------------
// Venue clock
// --------------------------------------------------

// LocalNow returns the clock's instant in the venue's timezone. Time-of-day
// and weekday rules are evaluated against this; date ranges still use the
// instant's UTC date.
func LocalNow(v *Venue, clock schedule.Clock) time.Time {
	return clock.Now().In(loadLocation(v.Timezone))
}

func loadLocation(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// --------------------------------------------------
// core.VenueReader
// --------------------------------------------------
func (s *Service) IsMember(ctx context.Context, venueID string, userID string) (bool, error) {
	return s.repo.IsMember(ctx, venueID, userID)
}

func (s *Service) ResolveSlug(ctx context.Context, slug string) (string, *time.Location, error) {
	v, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return "", nil, err
	}
	return v.ID, loadLocation(v.Timezone), nil
}

func (s *Service) Location(ctx context.Context, venueID string) (*time.Location, error) {
	v, err := s.repo.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return loadLocation(v.Timezone), nil
}

var _ core.VenueReader = (*Service)(nil)
