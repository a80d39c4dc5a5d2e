package venue

import (
	"context"
	"testing"
	"time"

	"menuboard/internal/core"
	"menuboard/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVenue_Success(t *testing.T) {
	service := NewService(NewMemoryRepository())

	v, err := service.CreateVenue(context.Background(), CreateInput{
		Name:     "Corner Cafe",
		Slug:     "Corner-Cafe",
		Timezone: "Europe/Berlin",
	}, "owner-123")
	require.NoError(t, err)

	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "corner-cafe", v.Slug)
	assert.Equal(t, "owner-123", v.OrganizationID)

	ok, err := service.IsMember(context.Background(), v.ID, "owner-123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateVenue_Validation(t *testing.T) {
	service := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := service.CreateVenue(ctx, CreateInput{Slug: "x"}, "o")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = service.CreateVenue(ctx, CreateInput{Name: "X", Slug: "no spaces"}, "o")
	assert.ErrorIs(t, err, ErrInvalidSlug)

	_, err = service.CreateVenue(ctx, CreateInput{Name: "X", Slug: "x", Timezone: "Mars/Olympus"}, "o")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	v, err := service.CreateVenue(ctx, CreateInput{Name: "X", Slug: "x"}, "o")
	require.NoError(t, err)
	assert.Equal(t, "UTC", v.Timezone)

	_, err = service.CreateVenue(ctx, CreateInput{Name: "Y", Slug: "x"}, "o")
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestListMyVenues(t *testing.T) {
	service := NewService(NewMemoryRepository())
	ctx := context.Background()

	service.CreateVenue(ctx, CreateInput{Name: "A", Slug: "a"}, "owner-123")
	service.CreateVenue(ctx, CreateInput{Name: "B", Slug: "b"}, "owner-123")
	service.CreateVenue(ctx, CreateInput{Name: "C", Slug: "c"}, "owner-456")

	venues, err := service.ListMyVenues(ctx, "owner-123")
	require.NoError(t, err)
	assert.Len(t, venues, 2)

	venues, err = service.ListMyVenues(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, venues)
}

func TestAddMember(t *testing.T) {
	service := NewService(NewMemoryRepository())
	ctx := context.Background()

	v, err := service.CreateVenue(ctx, CreateInput{Name: "A", Slug: "a"}, "owner")
	require.NoError(t, err)

	assert.ErrorIs(t, service.AddMember(ctx, v.ID, "stranger", "friend"), core.ErrForbidden)
	require.NoError(t, service.AddMember(ctx, v.ID, "owner", "staff"))

	ok, _ := service.IsMember(ctx, v.ID, "staff")
	assert.True(t, ok)
}

func TestResolveSlug(t *testing.T) {
	service := NewService(NewMemoryRepository())
	ctx := context.Background()

	v, err := service.CreateVenue(ctx, CreateInput{Name: "A", Slug: "a", Timezone: "Asia/Tokyo"}, "owner")
	require.NoError(t, err)

	id, loc, err := service.ResolveSlug(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, v.ID, id)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	_, _, err = service.ResolveSlug(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestLocalNow(t *testing.T) {
	clock := schedule.FixedClock{At: time.Date(2024, time.June, 3, 23, 30, 0, 0, time.UTC)}
	v := &Venue{Timezone: "Asia/Tokyo"}

	local := LocalNow(v, clock)
	assert.Equal(t, 8, local.Hour())
	assert.Equal(t, time.Tuesday, local.Weekday())
	assert.True(t, local.Equal(clock.At))

	assert.Equal(t, time.UTC, LocalNow(&Venue{Timezone: "bogus"}, clock).Location())
}
