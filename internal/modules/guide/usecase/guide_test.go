package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guideout "ritualcoach/internal/modules/guide/adapter/out"
	"ritualcoach/internal/modules/guide/domain"
	"ritualcoach/internal/modules/guide/dto"
	"ritualcoach/internal/modules/guide/usecase"
	apperrors "ritualcoach/internal/platform/errors"
)

type fakeFlows struct {
	calls []string
}

func (f *fakeFlows) Flow(_ context.Context, tradition, region string) (domain.Guide, error) {
	f.calls = append(f.calls, tradition+"/"+region)
	switch tradition {
	case "", "smarta":
		return domain.Guide{
			Tradition:    "smarta",
			Name:         "Smarta Daily Puja",
			Region:       region,
			Steps:        []domain.Step{{Title: "Dhyana", Minutes: 5}, {Title: "Arati", Minutes: 3}},
			TotalMinutes: 8,
		}, nil
	default:
		return domain.Guide{}, apperrors.ErrNotFound
	}
}

func TestExportWritesMarkdownAndHTML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	flows := &fakeFlows{}
	uc := usecase.NewInteractor(flows, guideout.NewFileStore(dir), nil)

	out, err := uc.Export(context.Background(), dto.ExportInput{Tradition: " Smarta ", Region: "South", HTML: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"smarta/south"}, flows.calls)
	assert.Equal(t, "smarta-south", out.Slug)
	assert.Equal(t, "Smarta Daily Puja", out.Title)
	assert.Equal(t, 2, out.Steps)
	assert.Equal(t, 8, out.TotalMinutes)
	assert.Equal(t, filepath.Join(dir, "smarta-south.md"), out.MarkdownPath)
	assert.Equal(t, filepath.Join(dir, "smarta-south.html"), out.HTMLPath)

	md, err := os.ReadFile(out.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "tradition: smarta")
	page, err := os.ReadFile(out.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h2>Steps</h2>")
}

func TestExportPreservesNotesAcrossRuns(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	uc := usecase.NewInteractor(&fakeFlows{}, guideout.NewFileStore(dir), nil)
	ctx := context.Background()

	out, err := uc.Export(ctx, dto.ExportInput{})
	require.NoError(t, err)
	assert.Empty(t, out.HTMLPath)
	assert.Equal(t, "smarta", out.Slug)

	f, err := os.OpenFile(out.MarkdownPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("\nBring extra camphor.\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = uc.Export(ctx, dto.ExportInput{})
	require.NoError(t, err)
	md, err := os.ReadFile(out.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "Bring extra camphor.")
}

func TestExportUnknownTradition(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	uc := usecase.NewInteractor(&fakeFlows{}, guideout.NewFileStore(dir), nil)

	_, err := uc.Export(context.Background(), dto.ExportInput{Tradition: "shaiva"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPreview(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&fakeFlows{}, guideout.NewFileStore(t.TempDir()), nil)
	body, err := uc.Preview(context.Background(), "smarta", "")
	require.NoError(t, err)
	assert.Contains(t, body, "# Smarta Daily Puja")
	assert.Contains(t, body, "2. **Arati** (3 minutes)")
}
