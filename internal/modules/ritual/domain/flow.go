package domain

import (
	"fmt"
	"sort"
)

// Flow is a tradition's daily ritual together with its supporting content.
type Flow struct {
	Tradition          string              `yaml:"tradition"`
	Label              string              `yaml:"label"`
	Name               string              `yaml:"name"`
	Steps              []Step              `yaml:"steps"`
	Materials          []string            `yaml:"materials"`
	Mantras            []string            `yaml:"mantras"`
	RegionalVariations map[string][]string `yaml:"regional_variations"`
	DietaryGuidelines  []string            `yaml:"dietary_guidelines"`
}

func (f Flow) Validate() error {
	if f.Tradition == "" {
		return fmt.Errorf("flow %q: tradition is required", f.Name)
	}
	if err := ValidateSteps(f.Steps); err != nil {
		return fmt.Errorf("flow %s: %w", f.Tradition, err)
	}
	return nil
}

func (f Flow) TotalMinutes() int {
	return TotalMinutes(f.Steps)
}

// Variations returns the regional hints for region, or nil.
func (f Flow) Variations(region string) []string {
	return f.RegionalVariations[region]
}

type Catalog struct {
	Regions map[string]string `yaml:"regions"`
	Flows   []Flow            `yaml:"flows"`
}

func (c Catalog) Validate() error {
	if len(c.Flows) == 0 {
		return fmt.Errorf("catalog has no flows")
	}
	seen := map[string]struct{}{}
	for _, flow := range c.Flows {
		if err := flow.Validate(); err != nil {
			return err
		}
		if _, ok := seen[flow.Tradition]; ok {
			return fmt.Errorf("duplicate flow for tradition %s", flow.Tradition)
		}
		seen[flow.Tradition] = struct{}{}
	}
	return nil
}

func (c Catalog) Flow(tradition string) (Flow, bool) {
	for _, flow := range c.Flows {
		if flow.Tradition == tradition {
			return flow, true
		}
	}
	return Flow{}, false
}

func (c Catalog) RegionLabel(region string) string {
	if label, ok := c.Regions[region]; ok {
		return label
	}
	return region
}

// Merge returns c with every flow of other replacing or extending c's flows.
func (c Catalog) Merge(other Catalog) Catalog {
	out := Catalog{Regions: map[string]string{}}
	for k, v := range c.Regions {
		out.Regions[k] = v
	}
	for k, v := range other.Regions {
		out.Regions[k] = v
	}
	byTradition := map[string]Flow{}
	for _, flow := range c.Flows {
		byTradition[flow.Tradition] = flow
	}
	for _, flow := range other.Flows {
		byTradition[flow.Tradition] = flow
	}
	traditions := make([]string, 0, len(byTradition))
	for tradition := range byTradition {
		traditions = append(traditions, tradition)
	}
	sort.Strings(traditions)
	for _, tradition := range traditions {
		out.Flows = append(out.Flows, byTradition[tradition])
	}
	return out
}
