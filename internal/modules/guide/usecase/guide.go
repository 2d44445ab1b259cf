package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ritualcoach/internal/modules/guide/domain"
	"ritualcoach/internal/modules/guide/dto"
	guidein "ritualcoach/internal/modules/guide/port/in"
	guideout "ritualcoach/internal/modules/guide/port/out"
	"ritualcoach/internal/modules/guide/service"
)

type Interactor struct {
	flows    guideout.FlowReader
	store    guideout.DocumentStore
	renderer *service.Renderer
	logger   *zap.Logger
}

func NewInteractor(flows guideout.FlowReader, store guideout.DocumentStore, logger *zap.Logger) guidein.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		flows:    flows,
		store:    store,
		renderer: service.NewRenderer(),
		logger:   logger,
	}
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	guide, err := i.guide(ctx, input.Tradition, input.Region)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	name := guide.Slug()

	existing, _, err := i.store.Read(ctx, name+".md")
	if err != nil {
		return dto.ExportOutput{}, err
	}
	doc, err := i.renderer.Markdown(guide, existing)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	out := dto.ExportOutput{
		Title:        guide.Title(),
		Slug:         name,
		Steps:        len(guide.Steps),
		TotalMinutes: guide.TotalMinutes,
	}
	if out.MarkdownPath, err = i.store.Write(ctx, name+".md", doc); err != nil {
		return dto.ExportOutput{}, err
	}

	if input.HTML {
		page, err := i.renderer.HTML(guide)
		if err != nil {
			return dto.ExportOutput{}, err
		}
		if out.HTMLPath, err = i.store.Write(ctx, name+".html", page); err != nil {
			return dto.ExportOutput{}, err
		}
	}
	i.logger.Info("guide exported", zap.String("slug", name), zap.String("markdown", out.MarkdownPath), zap.String("html", out.HTMLPath))
	return out, nil
}

func (i *Interactor) Preview(ctx context.Context, tradition, region string) (string, error) {
	guide, err := i.guide(ctx, tradition, region)
	if err != nil {
		return "", err
	}
	return guide.Body(), nil
}

func (i *Interactor) guide(ctx context.Context, tradition, region string) (domain.Guide, error) {
	return i.flows.Flow(ctx, strings.ToLower(strings.TrimSpace(tradition)), strings.ToLower(strings.TrimSpace(region)))
}
