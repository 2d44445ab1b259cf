package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritualcoach/internal/modules/guide/domain"
	"ritualcoach/internal/modules/guide/service"
	apperrors "ritualcoach/internal/platform/errors"
	"ritualcoach/internal/platform/markdown"
)

func guide() domain.Guide {
	return domain.Guide{
		Tradition:    "smarta",
		Name:         "Daily Puja",
		Steps:        []domain.Step{{Title: "Dhyana", Minutes: 5}},
		Materials:    []string{"ghee & oil", "lamp <brass>"},
		TotalMinutes: 5,
	}
}

func TestRendererMarkdownFreshExport(t *testing.T) {
	t.Parallel()
	doc, err := service.NewRenderer().Markdown(guide(), "")
	require.NoError(t, err)

	var meta domain.Meta
	body, found, err := markdown.DecodeFrontmatter(doc, &meta)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.SchemaVersion, meta.SchemaVersion)
	assert.Equal(t, "smarta", meta.Tradition)
	assert.Equal(t, "Daily Puja", meta.Title)
	assert.Equal(t, 1, meta.Steps)
	assert.Empty(t, meta.Extra)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), domain.ManagedStart))
	assert.Contains(t, body, "# Daily Puja")
	assert.Contains(t, body, domain.ManagedEnd)
}

func TestRendererMarkdownKeepsPersonalNotes(t *testing.T) {
	t.Parallel()
	renderer := service.NewRenderer()
	first, err := renderer.Markdown(guide(), "")
	require.NoError(t, err)

	var meta domain.Meta
	body, _, err := markdown.DecodeFrontmatter(first, &meta)
	require.NoError(t, err)
	meta.Extra = map[string]any{"owner": "asha"}
	edited, err := markdown.EncodeFrontmatter(meta, body+"\nMy own notes.\n")
	require.NoError(t, err)

	updated := guide()
	updated.Steps = append(updated.Steps, domain.Step{Title: "Arati", Minutes: 3})
	second, err := renderer.Markdown(updated, edited)
	require.NoError(t, err)

	meta = domain.Meta{}
	body, _, err = markdown.DecodeFrontmatter(second, &meta)
	require.NoError(t, err)
	assert.Equal(t, "asha", meta.Extra["owner"])
	assert.Equal(t, 2, meta.Steps)
	assert.Contains(t, body, "My own notes.")
	assert.Contains(t, body, "**Arati**")
	assert.Equal(t, 1, strings.Count(body, domain.ManagedStart))
}

func TestRendererMarkdownRefusesUnreadableExisting(t *testing.T) {
	t.Parallel()
	renderer := service.NewRenderer()

	_, err := renderer.Markdown(guide(), "---\nschema_version: 9\n---\nnotes\n")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedSchema)

	_, err = renderer.Markdown(guide(), "---\ntitle: [broken\n---\nnotes\n")
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)

	doc, err := renderer.Markdown(guide(), "Notes without a header.\n")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "---\nschema_version: 1\n"))
	assert.Contains(t, doc, "Notes without a header.")
}

func TestRendererHTML(t *testing.T) {
	t.Parallel()
	page, err := service.NewRenderer().HTML(guide())
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Daily Puja</title>")
	assert.Contains(t, page, "<h1>Daily Puja</h1>")
	assert.Contains(t, page, "<h2>Materials</h2>")
	assert.Contains(t, page, "<strong>Dhyana</strong>")
	assert.Contains(t, page, "ghee &amp; oil")
	assert.NotContains(t, page, "<brass>")
}
