// Package repository defines interfaces for data persistence
package repository

import (
	"context"
	"errors"

	"offsite/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

// LeadRepository stores lead-capture submissions
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByReference(ctx context.Context, reference string) (*domain.Lead, error)
	List(ctx context.Context, limit, offset int) ([]domain.Lead, error)
	Count(ctx context.Context) (int, error)
}

// Settings keys read by the site.
const (
	SettingHeroHeading = "hero_heading"
	SettingHeroSubtext = "hero_subtext"
	SettingHeroImage   = "hero_image"
)

// SettingsRepository handles editable site copy
type SettingsRepository interface {
	Lookup(ctx context.Context, keys ...string) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
}

// ContentWriter fills the local content tables. The site itself only reads
// content; this is used by the seed command.
type ContentWriter interface {
	SaveRegion(ctx context.Context, region *domain.Region) error
	SaveAd(ctx context.Context, ad *domain.Ad) error
	SaveActivity(ctx context.Context, activity *domain.Activity) error
}

// Repositories bundles all repository interfaces
type Repositories struct {
	Leads    LeadRepository
	Settings SettingsRepository
}
