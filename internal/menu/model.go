package menu

import (
	"time"

	"menuboard/internal/schedule"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Menu is a venue menu together with the schedules that control when it is
// shown on the public page.
type Menu struct {
	ID        string              `json:"id"`
	VenueID   string              `json:"venue_id"`
	Name      string              `json:"name"`
	Status    string              `json:"status"`
	SortOrder int                 `json:"sort_order"`
	UpdatedAt time.Time           `json:"updated_at"`
	Schedules []schedule.Schedule `json:"schedules"`
}

func (m Menu) ScheduleSet() []schedule.Schedule {
	return m.Schedules
}

// PublicPage is what a guest scanning the venue's QR code gets.
type PublicPage struct {
	VenueID     string    `json:"venue_id"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	Menus       []Menu    `json:"menus"`
}

// Visibility is the dashboard preview of a single menu at a given instant.
type Visibility struct {
	MenuID         string             `json:"menu_id"`
	Visible        bool               `json:"visible"`
	ActiveSchedule *schedule.Schedule `json:"active_schedule"`
	EvaluatedAt    time.Time          `json:"evaluated_at"`
}

// MenuUpdate carries the fields a PATCH may change.
type MenuUpdate struct {
	Name      *string `json:"name"`
	Status    *string `json:"status"`
	SortOrder *int    `json:"sort_order"`
}
