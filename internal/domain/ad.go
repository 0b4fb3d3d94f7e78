package domain

import "time"

// Ad is a destination/offer entry shown on listing and detail pages.
// The client never mutates it.
type Ad struct {
	ID              int64     `json:"id" db:"id"`
	Slug            string    `json:"slug" db:"slug"`
	Name            string    `json:"name" db:"name"`
	BannerImage     Text      `json:"banner_image" db:"banner_image"`
	Heading         Text      `json:"heading" db:"heading"`
	Subtext         Text      `json:"subtext" db:"subtext"`
	Location        Text      `json:"location" db:"location"`
	Description     Text      `json:"description" db:"description"`
	ShowcaseHeading Text      `json:"showcase_heading" db:"showcase_heading"`
	ShowcaseSubtext Text      `json:"showcase_subtext" db:"showcase_subtext"`
	CTAHeading      Text      `json:"cta_heading" db:"cta_heading"`
	CTASubtext      Text      `json:"cta_subtext" db:"cta_subtext"`
	Image1          Text      `json:"image1" db:"image1"`
	Heading1        Text      `json:"heading1" db:"heading1"`
	Subtext1        Text      `json:"subtext1" db:"subtext1"`
	Image2          Text      `json:"image2" db:"image2"`
	Heading2        Text      `json:"heading2" db:"heading2"`
	Subtext2        Text      `json:"subtext2" db:"subtext2"`
	Image3          Text      `json:"image3" db:"image3"`
	Heading3        Text      `json:"heading3" db:"heading3"`
	Subtext3        Text      `json:"subtext3" db:"subtext3"`
	RegionID        *int64    `json:"region_id" db:"region_id"`
	Priority        *int      `json:"priority" db:"priority"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Highlight is one image+heading+subtext showcase row.
type Highlight struct {
	Image   string
	Heading string
	Subtext string
}

// Highlights returns the populated showcase rows, at most three.
func (a Ad) Highlights() []Highlight {
	rows := []Highlight{
		{string(a.Image1), string(a.Heading1), string(a.Subtext1)},
		{string(a.Image2), string(a.Heading2), string(a.Subtext2)},
		{string(a.Image3), string(a.Heading3), string(a.Subtext3)},
	}
	out := make([]Highlight, 0, len(rows))
	for _, h := range rows {
		if h.Image == "" && h.Heading == "" && h.Subtext == "" {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Title prefers the override heading over the display name.
func (a Ad) Title() string {
	if a.Heading != "" {
		return string(a.Heading)
	}
	return a.Name
}

func (a Ad) RecordSlug() string   { return a.Slug }
func (a Ad) RecordRegion() *int64 { return a.RegionID }

// Rank is the priority, 0 when unset.
func (a Ad) Rank() int {
	if a.Priority == nil {
		return 0
	}
	return *a.Priority
}
