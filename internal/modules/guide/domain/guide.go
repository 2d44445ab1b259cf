package domain

import (
	"fmt"
	"strings"

	apperrors "ritualcoach/internal/platform/errors"
	"ritualcoach/internal/platform/slug"
)

const (
	ManagedStart = "<!-- ritualcoach:guide:start -->"
	ManagedEnd   = "<!-- ritualcoach:guide:end -->"

	SchemaVersion = 1
)

type Step struct {
	Title       string
	Description string
	Minutes     int
	Materials   []string
	Mantras     []string
}

// Guide is a printable rendition of one flow for one region.
type Guide struct {
	Tradition         string
	Label             string
	Name              string
	Region            string
	RegionLabel       string
	Steps             []Step
	Materials         []string
	Mantras           []string
	Variations        []string
	DietaryGuidelines []string
	TotalMinutes      int
}

func (g Guide) Title() string {
	if g.Name != "" {
		return g.Name
	}
	if g.Label != "" {
		return g.Label
	}
	return g.Tradition
}

func (g Guide) Slug() string {
	if g.Region == "" {
		return slug.Make(g.Tradition)
	}
	return slug.Make(g.Tradition + " " + g.Region)
}

// Meta is the frontmatter written above the guide body. Extra holds keys
// added by hand, which survive a re-export.
type Meta struct {
	SchemaVersion int            `yaml:"schema_version"`
	Title         string         `yaml:"title"`
	Tradition     string         `yaml:"tradition"`
	Region        string         `yaml:"region,omitempty"`
	Steps         int            `yaml:"steps"`
	TotalMinutes  int            `yaml:"total_minutes"`
	Extra         map[string]any `yaml:",inline"`
}

// Check rejects frontmatter written by a newer schema. A missing version is
// read as a document edited by hand.
func (m Meta) Check() error {
	if m.SchemaVersion < 0 || m.SchemaVersion > SchemaVersion {
		return fmt.Errorf("%w: guide schema_version %d", apperrors.ErrUnsupportedSchema, m.SchemaVersion)
	}
	return nil
}

func (g Guide) Meta() Meta {
	return Meta{
		SchemaVersion: SchemaVersion,
		Title:         g.Title(),
		Tradition:     g.Tradition,
		Region:        g.Region,
		Steps:         len(g.Steps),
		TotalMinutes:  g.TotalMinutes,
	}
}

// Body renders the generated Markdown sections. Empty sections are omitted.
func (g Guide) Body() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", g.Title())
	fmt.Fprintf(&b, "About %s across %d steps.\n", minutes(g.TotalMinutes), len(g.Steps))

	if len(g.Steps) > 0 {
		b.WriteString("\n## Steps\n\n")
		for i, step := range g.Steps {
			fmt.Fprintf(&b, "%d. **%s** (%s)\n", i+1, step.Title, minutes(step.Minutes))
			if step.Description != "" {
				fmt.Fprintf(&b, "   %s\n", step.Description)
			}
			if len(step.Materials) > 0 {
				fmt.Fprintf(&b, "   - Materials: %s\n", strings.Join(step.Materials, ", "))
			}
			for _, mantra := range step.Mantras {
				fmt.Fprintf(&b, "   - *%s*\n", mantra)
			}
		}
	}
	writeList(&b, "Materials", g.Materials, false)
	writeList(&b, "Mantras", g.Mantras, true)
	if g.RegionLabel != "" {
		writeList(&b, "Regional variations: "+g.RegionLabel, g.Variations, false)
	} else {
		writeList(&b, "Regional variations", g.Variations, false)
	}
	writeList(&b, "Dietary guidelines", g.DietaryGuidelines, false)
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, heading string, items []string, emphasise bool) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, item := range items {
		if emphasise {
			fmt.Fprintf(b, "- *%s*\n", item)
			continue
		}
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func minutes(m int) string {
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
