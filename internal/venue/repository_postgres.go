package venue

import (
	"context"
	"errors"

	"menuboard/internal/core"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a venue and make the creator a member
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, v *Venue, ownerID string) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO venues (id, organization_id, name, slug, timezone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`,
		v.ID,
		v.OrganizationID,
		v.Name,
		v.Slug,
		v.Timezone,
	).Scan(&v.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSlugTaken
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO venue_members (venue_id, user_id) VALUES ($1, $2)
	`, v.ID, ownerID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const selectVenue = `
	SELECT id, organization_id, name, slug, timezone, created_at
	FROM venues
`

func scanVenue(row pgx.Row) (*Venue, error) {
	v := &Venue{}
	err := row.Scan(&v.ID, &v.OrganizationID, &v.Name, &v.Slug, &v.Timezone, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	return v, err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	return scanVenue(r.db.QueryRow(ctx, selectVenue+`WHERE id = $1`, id))
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Venue, error) {
	return scanVenue(r.db.QueryRow(ctx, selectVenue+`WHERE slug = $1`, slug))
}

func (r *PostgresRepository) ListByMember(ctx context.Context, userID string) ([]*Venue, error) {
	return r.list(ctx, `
		SELECT v.id, v.organization_id, v.name, v.slug, v.timezone, v.created_at
		FROM venues v
		JOIN venue_members m ON m.venue_id = v.id
		WHERE m.user_id = $1
		ORDER BY v.created_at
	`, userID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Venue, error) {
	return r.list(ctx, selectVenue+`ORDER BY created_at`)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*Venue, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []*Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// --------------------------------------------------
// Membership
// --------------------------------------------------
func (r *PostgresRepository) IsMember(ctx context.Context, venueID string, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM venue_members WHERE venue_id = $1 AND user_id = $2
		)
	`, venueID, userID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) AddMember(ctx context.Context, venueID string, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO venue_members (venue_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, venueID, userID)
	return err
}
