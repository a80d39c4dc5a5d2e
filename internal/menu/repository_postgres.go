package menu

import (
	"context"
	"errors"

	"menuboard/internal/core"
	"menuboard/internal/schedule"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// MENUS
// --------------------------------------------------
func (r *PostgresRepository) CreateMenu(ctx context.Context, m *Menu) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = StatusDraft
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO menus (id, venue_id, name, status, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING updated_at
	`, m.ID, m.VenueID, m.Name, m.Status, m.SortOrder).Scan(&m.UpdatedAt)
}

func (r *PostgresRepository) UpdateMenu(ctx context.Context, m *Menu) error {
	err := r.db.QueryRow(ctx, `
		UPDATE menus
		SET name = $1,
		    status = $2,
		    sort_order = $3,
		    updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, m.Name, m.Status, m.SortOrder, m.ID).Scan(&m.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

func (r *PostgresRepository) GetMenu(ctx context.Context, id string) (*Menu, error) {
	m := &Menu{}
	err := r.db.QueryRow(ctx, `
		SELECT id, venue_id, name, status, sort_order, updated_at
		FROM menus
		WHERE id = $1
	`, id).Scan(&m.ID, &m.VenueID, &m.Name, &m.Status, &m.SortOrder, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}

	m.Schedules, err = r.ListSchedules(ctx, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// --------------------------------------------------
// PUBLISHED MENUS + SCHEDULES (two queries, no N+1)
// --------------------------------------------------
func (r *PostgresRepository) ListPublished(ctx context.Context, venueID string) ([]Menu, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, venue_id, name, status, sort_order, updated_at
		FROM menus
		WHERE venue_id = $1 AND status = $2
		ORDER BY sort_order, updated_at DESC
	`, venueID, StatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		menus []Menu
		ids   []string
	)
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.ID, &m.VenueID, &m.Name, &m.Status, &m.SortOrder, &m.UpdatedAt); err != nil {
			return nil, err
		}
		menus = append(menus, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return menus, nil
	}

	byMenu, err := r.schedulesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range menus {
		menus[i].Schedules = byMenu[menus[i].ID]
	}
	return menus, nil
}

// --------------------------------------------------
// SCHEDULES
// --------------------------------------------------

const selectSchedule = `
	SELECT
		id,
		menu_id,
		name,
		schedule_type,
		start_time,
		end_time,
		days_of_week,
		to_char(start_date, 'YYYY-MM-DD'),
		to_char(end_date, 'YYYY-MM-DD'),
		priority,
		is_active
	FROM menu_schedules
`

func (r *PostgresRepository) ListSchedules(ctx context.Context, menuID string) ([]schedule.Schedule, error) {
	byMenu, err := r.schedulesFor(ctx, []string{menuID})
	if err != nil {
		return nil, err
	}
	return byMenu[menuID], nil
}

func (r *PostgresRepository) schedulesFor(ctx context.Context, menuIDs []string) (map[string][]schedule.Schedule, error) {
	rows, err := r.db.Query(ctx, selectSchedule+`
		WHERE menu_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`, menuIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]schedule.Schedule, len(menuIDs))
	for rows.Next() {
		var (
			s    schedule.Schedule
			typ  string
			days []int32
		)
		if err := rows.Scan(
			&s.ID,
			&s.MenuID,
			&s.Name,
			&typ,
			&s.StartTime,
			&s.EndTime,
			&days,
			&s.StartDate,
			&s.EndDate,
			&s.Priority,
			&s.IsActive,
		); err != nil {
			return nil, err
		}

		s.Type = schedule.Type(typ)
		for _, d := range days {
			s.DaysOfWeek = append(s.DaysOfWeek, int(d))
		}
		out[s.MenuID] = append(out[s.MenuID], s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateSchedule(ctx context.Context, s *schedule.Schedule) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO menu_schedules (
			id,
			menu_id,
			name,
			schedule_type,
			start_time,
			end_time,
			days_of_week,
			start_date,
			end_date,
			priority,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::date, $9::text::date, $10, $11)
	`,
		s.ID,
		s.MenuID,
		s.Name,
		string(s.Type),
		s.StartTime,
		s.EndTime,
		daysParam(s.DaysOfWeek),
		s.StartDate,
		s.EndDate,
		s.Priority,
		s.IsActive,
	); err != nil {
		return err
	}

	if err := touchMenu(ctx, tx, s.MenuID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) UpdateSchedule(ctx context.Context, s *schedule.Schedule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE menu_schedules
		SET name = $1,
		    schedule_type = $2,
		    start_time = $3,
		    end_time = $4,
		    days_of_week = $5,
		    start_date = $6::text::date,
		    end_date = $7::text::date,
		    priority = $8,
		    is_active = $9,
		    updated_at = now()
		WHERE id = $10 AND menu_id = $11
	`,
		s.Name,
		string(s.Type),
		s.StartTime,
		s.EndTime,
		daysParam(s.DaysOfWeek),
		s.StartDate,
		s.EndDate,
		s.Priority,
		s.IsActive,
		s.ID,
		s.MenuID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return core.ErrNotFound
	}

	if err := touchMenu(ctx, tx, s.MenuID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) DeleteSchedule(ctx context.Context, menuID string, scheduleID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		DELETE FROM menu_schedules WHERE id = $1 AND menu_id = $2
	`, scheduleID, menuID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return core.ErrNotFound
	}

	if err := touchMenu(ctx, tx, menuID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func touchMenu(ctx context.Context, tx pgx.Tx, menuID string) error {
	_, err := tx.Exec(ctx, `UPDATE menus SET updated_at = now() WHERE id = $1`, menuID)
	return err
}

// nil keeps the column NULL rather than an empty array
func daysParam(days []int) []int32 {
	if len(days) == 0 {
		return nil
	}
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}
