package domain

import "time"

// Activity is a team activity (workshop, sport, excursion) offered on its
// own listing and detail pages.
type Activity struct {
	ID          int64     `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Image       Text      `json:"image" db:"image"`
	Heading     Text      `json:"heading" db:"heading"`
	Subtext     Text      `json:"subtext" db:"subtext"`
	Description Text      `json:"description" db:"description"`
	Duration    Text      `json:"duration" db:"duration"`
	GroupSize   Text      `json:"group_size" db:"group_size"`
	RegionID    *int64    `json:"region_id" db:"region_id"`
	Priority    *int      `json:"priority" db:"priority"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (a Activity) RecordSlug() string   { return a.Slug }
func (a Activity) RecordRegion() *int64 { return a.RegionID }

func (a Activity) Rank() int {
	if a.Priority == nil {
		return 0
	}
	return *a.Priority
}

// Title prefers the override heading over the display name.
func (a Activity) Title() string {
	if a.Heading != "" {
		return string(a.Heading)
	}
	return a.Name
}
