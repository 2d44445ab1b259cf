package out

import (
	"context"

	"ritualcoach/internal/modules/guide/domain"
)

type FlowReader interface {
	// Flow loads tradition for region; an empty tradition means the
	// profile's flow.
	Flow(ctx context.Context, tradition, region string) (domain.Guide, error)
}

type DocumentStore interface {
	Read(ctx context.Context, name string) (string, bool, error)
	// Write stores content under name and returns where it landed.
	Write(ctx context.Context, name, content string) (string, error)
}
