package venue

import "context"

type Repository interface {
	// core
	Create(ctx context.Context, v *Venue, ownerID string) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	GetBySlug(ctx context.Context, slug string) (*Venue, error)
	ListByMember(ctx context.Context, userID string) ([]*Venue, error)
	ListAll(ctx context.Context) ([]*Venue, error)

	// membership
	IsMember(ctx context.Context, venueID string, userID string) (bool, error)
	AddMember(ctx context.Context, venueID string, userID string) error
}
