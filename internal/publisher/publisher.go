package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menuboard/internal/menu"
	"menuboard/internal/metrics"
	"menuboard/internal/schedule"
	"menuboard/internal/storage"
	"menuboard/internal/venue"

	"github.com/rs/zerolog"
)

var ErrInvalidInterval = errors.New("publish interval must be positive")

type VenueLister interface {
	ListAll(ctx context.Context) ([]*venue.Venue, error)
}

type MenuSource interface {
	VisibleMenus(ctx context.Context, venueID string, now time.Time) (*menu.PublicPage, error)
}

// Publisher writes a static snapshot of every venue's visible menus to
// object storage.
type Publisher struct {
	venues   VenueLister
	menus    MenuSource
	uploader storage.Uploader
	clock    schedule.Clock
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func New(
	venues VenueLister,
	menus MenuSource,
	uploader storage.Uploader,
	clock schedule.Clock,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Publisher {
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	return &Publisher{
		venues:   venues,
		menus:    menus,
		uploader: uploader,
		clock:    clock,
		metrics:  m,
		log:      log.With().Str("component", "publisher").Logger(),
	}
}

func SnapshotKey(slug string) string {
	return fmt.Sprintf("venues/%s/menus.json", slug)
}

// RunOnce publishes every venue. A venue that fails is logged and skipped;
// the returned count is the number of snapshots written.
func (p *Publisher) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.PublishDuration.Observe(time.Since(start).Seconds())
		}
	}()

	venues, err := p.venues.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list venues: %w", err)
	}

	published := 0
	for _, v := range venues {
		if err := ctx.Err(); err != nil {
			return published, err
		}

		url, err := p.publishVenue(ctx, v)
		if err != nil {
			p.metrics.UploadResult("error")
			p.log.Warn().Err(err).Str("venue", v.Slug).Msg("snapshot failed")
			continue
		}

		p.metrics.UploadResult("ok")
		p.log.Debug().Str("venue", v.Slug).Str("url", url).Msg("snapshot published")
		published++
	}

	return published, nil
}

func (p *Publisher) publishVenue(ctx context.Context, v *venue.Venue) (string, error) {
	now := venue.LocalNow(v, p.clock)

	page, err := p.menus.VisibleMenus(ctx, v.ID, now)
	if err != nil {
		return "", err
	}
	if page.Menus == nil {
		page.Menus = []menu.Menu{}
	}

	return p.uploader.PutJSON(ctx, SnapshotKey(v.Slug), page)
}

// Run publishes immediately and then on every tick until ctx is done.
func (p *Publisher) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	p.log.Info().Dur("interval", interval).Msg("publisher running")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := p.RunOnce(ctx)
		if err != nil && ctx.Err() == nil {
			p.log.Error().Err(err).Msg("publish run failed")
		} else if err == nil {
			p.log.Info().Int("venues", n).Msg("publish run complete")
		}

		select {
		case <-ctx.Done():
			p.log.Info().Msg("publisher stopped")
			return nil
		case <-ticker.C:
		}
	}
}
