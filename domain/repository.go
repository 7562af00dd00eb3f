package domain

import (
	"context"

	"github.com/kompox/mcstack/domain/model"
)

// BuildRepository stores and retrieves synthesized builds.
type BuildRepository interface {
	Create(ctx context.Context, b *model.Build) error
	Get(ctx context.Context, id string) (*model.Build, error)
	List(ctx context.Context) ([]*model.Build, error)
	Delete(ctx context.Context, id string) error
}

// Repositories groups repository interfaces.
type Repositories struct {
	Build BuildRepository
}
