package out

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"ritualcoach/internal/modules/ritual/domain"
	apperrors "ritualcoach/internal/platform/errors"
)

//go:embed flows.yaml
var embeddedFlows []byte

// YAMLFlowSource serves the built-in flow catalog, merged with an optional
// override file. Flows in the override replace built-in flows of the same
// tradition.
type YAMLFlowSource struct {
	overridePath string

	once    sync.Once
	catalog domain.Catalog
	err     error
}

func NewYAMLFlowSource(overridePath string) *YAMLFlowSource {
	return &YAMLFlowSource{overridePath: strings.TrimSpace(overridePath)}
}

func (s *YAMLFlowSource) Catalog(_ context.Context) (domain.Catalog, error) {
	s.once.Do(func() {
		s.catalog, s.err = s.load()
	})
	return s.catalog, s.err
}

func (s *YAMLFlowSource) load() (domain.Catalog, error) {
	base, err := DecodeCatalog(embeddedFlows)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("decode built-in flows: %w", err)
	}
	if s.overridePath == "" {
		return base, nil
	}
	raw, err := os.ReadFile(s.overridePath)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read flows override: %w", err)
	}
	override, err := DecodeCatalog(raw)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("decode %s: %w", s.overridePath, err)
	}
	return base.Merge(override), nil
}

// DecodeCatalog parses and validates a YAML flow catalog.
func DecodeCatalog(raw []byte) (domain.Catalog, error) {
	catalog := domain.Catalog{}
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecord, err)
	}
	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return catalog, nil
}
