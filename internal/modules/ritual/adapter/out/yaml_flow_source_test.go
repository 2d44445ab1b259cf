package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ritualout "ritualcoach/internal/modules/ritual/adapter/out"
	apperrors "ritualcoach/internal/platform/errors"
)

func TestBuiltInCatalog(t *testing.T) {
	t.Parallel()
	catalog, err := ritualout.NewYAMLFlowSource("").Catalog(context.Background())
	require.NoError(t, err)

	smarta, ok := catalog.Flow("andhra_smarta")
	require.True(t, ok)
	durations := make([]int, 0, len(smarta.Steps))
	for _, step := range smarta.Steps {
		durations = append(durations, step.DurationMinutes)
	}
	assert.Equal(t, []int{2, 3, 5, 15, 5}, durations)
	assert.Len(t, smarta.Steps[3].Materials, 11)
	assert.Equal(t, []string{"Use coconut oil lamps", "Offer jasmine and marigold flowers", "Include banana and coconut as fruits", "Use Telugu mantras alongside Sanskrit"}, smarta.Variations("south"))

	vaishnava, ok := catalog.Flow("vaishnava")
	require.True(t, ok)
	assert.Len(t, vaishnava.Steps, 6)
	assert.Equal(t, 30, vaishnava.TotalMinutes())
	assert.Equal(t, "Tulasī Arcana (तुलसी अर्चना)", vaishnava.Steps[3].Title)
	assert.Nil(t, vaishnava.Variations("east"))
}

func TestOverrideReplacesTradition(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "flows.yaml")
	override := `
flows:
  - tradition: vaishnava
    name: Short Vaishnava
    steps:
      - id: a
        title: Tulasī
      - id: b
        title: Ārati
        duration_minutes: 2
  - tradition: family
    name: Family Pūjā
    steps:
      - id: "1"
        title: Dīpa
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	catalog, err := ritualout.NewYAMLFlowSource(path).Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog.Flows, 3)

	vaishnava, ok := catalog.Flow("vaishnava")
	require.True(t, ok)
	assert.Equal(t, "Short Vaishnava", vaishnava.Name)
	assert.Equal(t, 7, vaishnava.TotalMinutes())
	_, ok = catalog.Flow("family")
	assert.True(t, ok)
	_, ok = catalog.Flow("andhra_smarta")
	assert.True(t, ok)
	assert.Equal(t, "South Indian", catalog.RegionLabel("south"))
}

func TestMissingOverrideFallsBackToBuiltIn(t *testing.T) {
	t.Parallel()
	catalog, err := ritualout.NewYAMLFlowSource(filepath.Join(t.TempDir(), "absent.yaml")).Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog.Flows, 2)
}

func TestInvalidOverrideIsReported(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("flows: [\n"), 0o644))
	_, err := ritualout.NewYAMLFlowSource(broken).Catalog(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("flows:\n  - tradition: x\n    steps:\n      - id: a\n      - id: a\n"), 0o644))
	_, err = ritualout.NewYAMLFlowSource(dup).Catalog(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
