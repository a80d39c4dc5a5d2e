package menu

import (
	"context"

	"menuboard/internal/schedule"
)

// Repository defines all database operations for menus and their schedules.
type Repository interface {

	// -------------------------------
	// Menus
	// -------------------------------

	CreateMenu(ctx context.Context, m *Menu) error

	UpdateMenu(ctx context.Context, m *Menu) error

	// GetMenu returns the menu with its schedules loaded.
	GetMenu(ctx context.Context, id string) (*Menu, error)

	// ListPublished returns a venue's published menus, schedules preloaded,
	// ordered by sort order.
	ListPublished(ctx context.Context, venueID string) ([]Menu, error)

	// -------------------------------
	// Schedules
	// -------------------------------

	// ListSchedules returns schedules in creation order.
	ListSchedules(ctx context.Context, menuID string) ([]schedule.Schedule, error)

	CreateSchedule(ctx context.Context, s *schedule.Schedule) error

	UpdateSchedule(ctx context.Context, s *schedule.Schedule) error

	DeleteSchedule(ctx context.Context, menuID string, scheduleID string) error
}
