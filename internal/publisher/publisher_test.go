package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"menuboard/internal/menu"
	"menuboard/internal/metrics"
	"menuboard/internal/schedule"
	"menuboard/internal/venue"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu   sync.Mutex
	docs map[string]any
	fail map[string]bool
}

func (f *fakeUploader) PutJSON(_ context.Context, key string, v any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[key] {
		return "", errors.New("upload refused")
	}
	if f.docs == nil {
		f.docs = map[string]any{}
	}
	f.docs[key] = v
	return "https://cdn.test/" + key, nil
}

type fakeVenues struct {
	list []*venue.Venue
	err  error
}

func (f fakeVenues) ListAll(context.Context) ([]*venue.Venue, error) {
	return f.list, f.err
}

type recordingMenus struct {
	mu   sync.Mutex
	seen map[string]time.Time
	err  map[string]error
}

func (r *recordingMenus) VisibleMenus(_ context.Context, venueID string, now time.Time) (*menu.PublicPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = map[string]time.Time{}
	}
	r.seen[venueID] = now
	if err := r.err[venueID]; err != nil {
		return nil, err
	}
	return &menu.PublicPage{VenueID: venueID, EvaluatedAt: now}, nil
}

var noon = time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)

func TestRunOnce_PublishesEachVenueAtLocalTime(t *testing.T) {
	venues := fakeVenues{list: []*venue.Venue{
		{ID: "v1", Slug: "corner-cafe", Timezone: "UTC"},
		{ID: "v2", Slug: "tokyo-bar", Timezone: "Asia/Tokyo"},
	}}
	menus := &recordingMenus{}
	up := &fakeUploader{}
	m := metrics.New("test", prometheus.NewRegistry())

	p := New(venues, menus, up, schedule.FixedClock{At: noon}, m, zerolog.Nop())

	n, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Contains(t, up.docs, "venues/corner-cafe/menus.json")
	assert.Contains(t, up.docs, "venues/tokyo-bar/menus.json")
	assert.Equal(t, 21, menus.seen["v2"].Hour())

	page := up.docs["venues/corner-cafe/menus.json"].(*menu.PublicPage)
	assert.NotNil(t, page.Menus)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SnapshotUploads.WithLabelValues("ok")))
}

func TestRunOnce_FailedVenueDoesNotStopRun(t *testing.T) {
	venues := fakeVenues{list: []*venue.Venue{
		{ID: "v1", Slug: "broken"},
		{ID: "v2", Slug: "fine"},
		{ID: "v3", Slug: "refused"},
	}}
	menus := &recordingMenus{err: map[string]error{"v1": errors.New("db down")}}
	up := &fakeUploader{fail: map[string]bool{"venues/refused/menus.json": true}}
	m := metrics.New("test", prometheus.NewRegistry())

	p := New(venues, menus, up, schedule.FixedClock{At: noon}, m, zerolog.Nop())

	n, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, up.docs, "venues/fine/menus.json")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SnapshotUploads.WithLabelValues("error")))
}

func TestRunOnce_ListError(t *testing.T) {
	p := New(fakeVenues{err: errors.New("nope")}, &recordingMenus{}, &fakeUploader{}, nil, nil, zerolog.Nop())

	_, err := p.RunOnce(context.Background())
	assert.ErrorContains(t, err, "list venues")
}

func TestRun_StopsOnCancel(t *testing.T) {
	venues := fakeVenues{list: []*venue.Venue{{ID: "v1", Slug: "corner-cafe"}}}
	up := &fakeUploader{}
	p := New(venues, &recordingMenus{}, up, schedule.FixedClock{At: noon}, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, time.Hour) }()

	require.Eventually(t, func() bool {
		up.mu.Lock()
		defer up.mu.Unlock()
		return len(up.docs) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}

func TestRun_RejectsNonPositiveInterval(t *testing.T) {
	up := &fakeUploader{}
	p := New(fakeVenues{list: []*venue.Venue{{ID: "v1", Slug: "corner-cafe"}}}, &recordingMenus{}, up, schedule.FixedClock{At: noon}, nil, zerolog.Nop())

	for _, interval := range []time.Duration{0, -time.Second} {
		var err error
		require.NotPanics(t, func() { err = p.Run(context.Background(), interval) })
		assert.ErrorIs(t, err, ErrInvalidInterval)
	}
	assert.Empty(t, up.docs)
}
