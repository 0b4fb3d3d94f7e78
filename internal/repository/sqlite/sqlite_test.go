package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"offsite/internal/domain"
	"offsite/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "offsite.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate(), "migrations are idempotent")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLeadRepo_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeadRepo(db)
	ctx := context.Background()

	first := &domain.Lead{Name: "Asha", Email: "asha@acme.test", TeamSize: 40, CreatedAt: time.Now().UTC().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Len(t, first.Reference, 36)

	second := &domain.Lead{Name: "Ravi", Email: "ravi@acme.test", Company: "Acme", SourcePath: "/destinations/goa"}
	require.NoError(t, repo.Create(ctx, second))

	leads, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Ravi", leads[0].Name, "newest first")
	assert.Equal(t, "/destinations/goa", leads[0].SourcePath)
	assert.Equal(t, 40, leads[1].TeamSize)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := repo.GetByReference(ctx, second.Reference)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)

	_, err = repo.GetByReference(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSettingsRepo_LookupSave(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	got, err := repo.Lookup(ctx, repository.SettingHeroHeading)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, repo.Save(ctx, map[string]string{
		repository.SettingHeroHeading: "Offsites that work",
		repository.SettingHeroImage:   "https://cdn.test/hero.jpg",
	}))
	require.NoError(t, repo.Save(ctx, map[string]string{
		repository.SettingHeroHeading: "Offsites people remember",
	}))

	got, err = repo.Lookup(ctx, repository.SettingHeroHeading, repository.SettingHeroImage, repository.SettingHeroSubtext)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		repository.SettingHeroHeading: "Offsites people remember",
		repository.SettingHeroImage:   "https://cdn.test/hero.jpg",
	}, got)

	got, err = repo.Lookup(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestContentRepo_SaveReplacesBySlug(t *testing.T) {
	db := newTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	goa := &domain.Region{Name: "Goa"}
	require.NoError(t, repo.SaveRegion(ctx, goa))
	again := &domain.Region{Name: "Goa"}
	require.NoError(t, repo.SaveRegion(ctx, again))
	assert.Equal(t, goa.ID, again.ID)

	prio := 3
	ad := &domain.Ad{Slug: "goa-beach", Name: "Goa Beach", RegionID: &goa.ID, Priority: &prio}
	require.NoError(t, repo.SaveAd(ctx, ad))
	ad.Name = "Goa Beach Retreat"
	require.NoError(t, repo.SaveAd(ctx, ad))

	var names []string
	require.NoError(t, db.Select(&names, `SELECT name FROM ads WHERE slug = 'goa-beach'`))
	assert.Equal(t, []string{"Goa Beach Retreat"}, names)

	act := &domain.Activity{Slug: "kayak", Name: "Kayaking", Duration: "3 hours"}
	require.NoError(t, repo.SaveActivity(ctx, act))
	assert.NotZero(t, act.ID)
}
