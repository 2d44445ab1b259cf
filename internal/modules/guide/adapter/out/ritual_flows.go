package out

import (
	"context"

	"ritualcoach/internal/modules/guide/domain"
	guideout "ritualcoach/internal/modules/guide/port/out"
	ritualdto "ritualcoach/internal/modules/ritual/dto"
	ritualin "ritualcoach/internal/modules/ritual/port/in"
)

// RitualFlows reads flows through the ritual module.
type RitualFlows struct {
	ritual ritualin.Usecase
}

var _ guideout.FlowReader = (*RitualFlows)(nil)

func NewRitualFlows(ritual ritualin.Usecase) *RitualFlows {
	return &RitualFlows{ritual: ritual}
}

func (r *RitualFlows) Flow(ctx context.Context, tradition, region string) (domain.Guide, error) {
	var (
		flow ritualdto.FlowOutput
		err  error
	)
	if tradition == "" {
		flow, err = r.ritual.ProfileFlow(ctx)
	} else {
		flow, err = r.ritual.Flow(ctx, tradition, region)
	}
	if err != nil {
		return domain.Guide{}, err
	}
	return toGuide(flow), nil
}

func toGuide(flow ritualdto.FlowOutput) domain.Guide {
	steps := make([]domain.Step, 0, len(flow.Steps))
	for _, step := range flow.Steps {
		steps = append(steps, domain.Step{
			Title:       step.Title,
			Description: step.Description,
			Minutes:     step.DurationMinutes,
			Materials:   step.Materials,
			Mantras:     step.Mantras,
		})
	}
	return domain.Guide{
		Tradition:         flow.Tradition,
		Label:             flow.Label,
		Name:              flow.Name,
		Region:            flow.Region,
		RegionLabel:       flow.RegionLabel,
		Steps:             steps,
		Materials:         flow.Materials,
		Mantras:           flow.Mantras,
		Variations:        flow.Variations,
		DietaryGuidelines: flow.DietaryGuidelines,
		TotalMinutes:      flow.TotalMinutes,
	}
}
