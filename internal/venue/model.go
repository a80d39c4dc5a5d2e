package venue

import "time"

type Venue struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Timezone       string    `json:"timezone"`
	CreatedAt      time.Time `json:"created_at"`
}
