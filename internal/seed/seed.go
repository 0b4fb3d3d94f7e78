// Package seed loads demo content into the local store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"offsite/internal/domain"
	"offsite/internal/repository"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the YAML document shape.
type Fixtures struct {
	Settings   map[string]string `yaml:"settings"`
	Regions    []string          `yaml:"regions"`
	Ads        []AdFixture       `yaml:"ads"`
	Activities []ActivityFixture `yaml:"activities"`
}

// Showcase is one highlight row of an ad.
type Showcase struct {
	Image   string `yaml:"image"`
	Heading string `yaml:"heading"`
	Subtext string `yaml:"subtext"`
}

type AdFixture struct {
	Slug            string     `yaml:"slug"`
	Name            string     `yaml:"name"`
	Region          string     `yaml:"region"`
	Priority        *int       `yaml:"priority"`
	BannerImage     string     `yaml:"banner_image"`
	Heading         string     `yaml:"heading"`
	Subtext         string     `yaml:"subtext"`
	Location        string     `yaml:"location"`
	Description     string     `yaml:"description"`
	ShowcaseHeading string     `yaml:"showcase_heading"`
	ShowcaseSubtext string     `yaml:"showcase_subtext"`
	CTAHeading      string     `yaml:"cta_heading"`
	CTASubtext      string     `yaml:"cta_subtext"`
	Highlights      []Showcase `yaml:"highlights"`
}

type ActivityFixture struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Region      string `yaml:"region"`
	Priority    *int   `yaml:"priority"`
	Image       string `yaml:"image"`
	Heading     string `yaml:"heading"`
	Subtext     string `yaml:"subtext"`
	Description string `yaml:"description"`
	Duration    string `yaml:"duration"`
	GroupSize   string `yaml:"group_size"`
}

// Parse decodes a fixtures document. nil data means the built-in fixtures.
func Parse(data []byte) (*Fixtures, error) {
	const op = "seed.Parse"

	if data == nil {
		data = defaultFixtures
	}

	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]bool)
	for _, a := range f.Ads {
		if a.Slug == "" || a.Name == "" {
			return nil, fmt.Errorf("%s: ad needs slug and name", op)
		}
		if seen["ad/"+a.Slug] {
			return nil, fmt.Errorf("%s: duplicate ad slug %q", op, a.Slug)
		}
		seen["ad/"+a.Slug] = true
	}
	for _, a := range f.Activities {
		if a.Slug == "" || a.Name == "" {
			return nil, fmt.Errorf("%s: activity needs slug and name", op)
		}
		if seen["activity/"+a.Slug] {
			return nil, fmt.Errorf("%s: duplicate activity slug %q", op, a.Slug)
		}
		seen["activity/"+a.Slug] = true
	}

	return &f, nil
}

// Result counts what Load wrote.
type Result struct {
	Regions    int
	Ads        int
	Activities int
	Settings   int
}

// Load writes fixtures through the repositories. Records are upserted by
// region name and slug, so running it twice is safe.
func Load(ctx context.Context, f *Fixtures, content repository.ContentWriter, settings repository.SettingsRepository, log *slog.Logger) (Result, error) {
	const op = "seed.Load"

	var res Result
	regionIDs := make(map[string]int64)

	region := func(name string) (*int64, error) {
		if name == "" {
			return nil, nil
		}
		if id, ok := regionIDs[name]; ok {
			return &id, nil
		}
		r := &domain.Region{Name: name}
		if err := content.SaveRegion(ctx, r); err != nil {
			return nil, err
		}
		regionIDs[name] = r.ID
		res.Regions++
		id := r.ID
		return &id, nil
	}

	for _, name := range f.Regions {
		if _, err := region(name); err != nil {
			return res, fmt.Errorf("%s: %w", op, err)
		}
	}

	for _, a := range f.Ads {
		rid, err := region(a.Region)
		if err != nil {
			return res, fmt.Errorf("%s: %w", op, err)
		}
		ad := a.toDomain(rid)
		if err := content.SaveAd(ctx, &ad); err != nil {
			return res, fmt.Errorf("%s: %w", op, err)
		}
		res.Ads++
	}

	for _, a := range f.Activities {
		rid, err := region(a.Region)
		if err != nil {
			return res, fmt.Errorf("%s: %w", op, err)
		}
		act := domain.Activity{
			Slug:        a.Slug,
			Name:        a.Name,
			Image:       domain.Text(a.Image),
			Heading:     domain.Text(a.Heading),
			Subtext:     domain.Text(a.Subtext),
			Description: domain.Text(a.Description),
			Duration:    domain.Text(a.Duration),
			GroupSize:   domain.Text(a.GroupSize),
			RegionID:    rid,
			Priority:    a.Priority,
		}
		if err := content.SaveActivity(ctx, &act); err != nil {
			return res, fmt.Errorf("%s: %w", op, err)
		}
		res.Activities++
	}

	if err := settings.Save(ctx, f.Settings); err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	res.Settings = len(f.Settings)

	log.Info("fixtures loaded",
		slog.Int("regions", res.Regions),
		slog.Int("ads", res.Ads),
		slog.Int("activities", res.Activities),
		slog.Int("settings", res.Settings),
	)

	return res, nil
}

func (a AdFixture) toDomain(regionID *int64) domain.Ad {
	ad := domain.Ad{
		Slug:            a.Slug,
		Name:            a.Name,
		BannerImage:     domain.Text(a.BannerImage),
		Heading:         domain.Text(a.Heading),
		Subtext:         domain.Text(a.Subtext),
		Location:        domain.Text(a.Location),
		Description:     domain.Text(a.Description),
		ShowcaseHeading: domain.Text(a.ShowcaseHeading),
		ShowcaseSubtext: domain.Text(a.ShowcaseSubtext),
		CTAHeading:      domain.Text(a.CTAHeading),
		CTASubtext:      domain.Text(a.CTASubtext),
		RegionID:        regionID,
		Priority:        a.Priority,
	}

	slots := []struct{ image, heading, subtext *domain.Text }{
		{&ad.Image1, &ad.Heading1, &ad.Subtext1},
		{&ad.Image2, &ad.Heading2, &ad.Subtext2},
		{&ad.Image3, &ad.Heading3, &ad.Subtext3},
	}
	for i, h := range a.Highlights {
		if i >= len(slots) {
			break
		}
		*slots[i].image = domain.Text(h.Image)
		*slots[i].heading = domain.Text(h.Heading)
		*slots[i].subtext = domain.Text(h.Subtext)
	}
	return ad
}
