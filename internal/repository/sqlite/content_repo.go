package sqlite

import (
	"context"
	"fmt"

	"offsite/internal/domain"
	"offsite/internal/repository"
)

// ContentRepo writes the local content tables used by the sqlite backend.
type ContentRepo struct {
	db *DB
}

func NewContentRepo(db *DB) repository.ContentWriter {
	return &ContentRepo{db: db}
}

// SaveRegion inserts a region or, when the name exists, loads its ID.
func (r *ContentRepo) SaveRegion(ctx context.Context, region *domain.Region) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO regions (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, region.Name)
	if err != nil {
		return fmt.Errorf("failed to save region %s: %w", region.Name, err)
	}
	if err := r.db.GetContext(ctx, &region.ID, `SELECT id FROM regions WHERE name = ?`, region.Name); err != nil {
		return fmt.Errorf("failed to load region %s: %w", region.Name, err)
	}
	return nil
}

// SaveAd replaces any ad with the same slug.
func (r *ContentRepo) SaveAd(ctx context.Context, ad *domain.Ad) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to save ad %s: %w", ad.Slug, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ads WHERE slug = ?`, ad.Slug); err != nil {
		return fmt.Errorf("failed to save ad %s: %w", ad.Slug, err)
	}

	query := `INSERT INTO ads (slug, name, banner_image, heading, subtext, location, description,
			showcase_heading, showcase_subtext, cta_heading, cta_subtext,
			image1, heading1, subtext1, image2, heading2, subtext2, image3, heading3, subtext3,
			region_id, priority)
		VALUES (:slug, :name, :banner_image, :heading, :subtext, :location, :description,
			:showcase_heading, :showcase_subtext, :cta_heading, :cta_subtext,
			:image1, :heading1, :subtext1, :image2, :heading2, :subtext2, :image3, :heading3, :subtext3,
			:region_id, :priority)`
	result, err := tx.NamedExecContext(ctx, query, ad)
	if err != nil {
		return fmt.Errorf("failed to save ad %s: %w", ad.Slug, err)
	}
	ad.ID, _ = result.LastInsertId()

	return tx.Commit()
}

// SaveActivity replaces any activity with the same slug.
func (r *ContentRepo) SaveActivity(ctx context.Context, a *domain.Activity) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", a.Slug, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE slug = ?`, a.Slug); err != nil {
		return fmt.Errorf("failed to save activity %s: %w", a.Slug, err)
	}

	query := `INSERT INTO activities (slug, name, image, heading, subtext, description, duration, group_size, region_id, priority)
		VALUES (:slug, :name, :image, :heading, :subtext, :description, :duration, :group_size, :region_id, :priority)`
	result, err := tx.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", a.Slug, err)
	}
	a.ID, _ = result.LastInsertId()

	return tx.Commit()
}
