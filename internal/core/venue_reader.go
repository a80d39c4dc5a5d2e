package core

import (
	"context"
	"time"
)

// VenueReader is what the menu side needs to know about venues without
// depending on the venue package.
type VenueReader interface {
	IsMember(ctx context.Context, venueID string, userID string) (bool, error)

	// ResolveSlug maps a public slug to the venue id and its local clock.
	ResolveSlug(ctx context.Context, slug string) (venueID string, loc *time.Location, err error)

	Location(ctx context.Context, venueID string) (*time.Location, error)
}
