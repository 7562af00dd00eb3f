package stack

import (
	"context"
	"fmt"

	"github.com/kompox/mcstack/domain/model"
)

// ListBuildsInput holds parameters for listing builds.
type ListBuildsInput struct {
	// StackName filters builds by stack when set.
	StackName string `json:"stack_name,omitempty"`
}

// ListBuildsOutput holds the saved builds, oldest first.
type ListBuildsOutput struct {
	Builds []*model.Build `json:"builds"`
}

// ListBuilds returns saved builds.
func (u *UseCase) ListBuilds(ctx context.Context, in *ListBuildsInput) (*ListBuildsOutput, error) {
	if in == nil {
		in = &ListBuildsInput{}
	}
	builds, err := u.Repos.Build.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	if in.StackName == "" {
		return &ListBuildsOutput{Builds: builds}, nil
	}
	out := &ListBuildsOutput{Builds: []*model.Build{}}
	for _, b := range builds {
		if b.StackName == in.StackName {
			out.Builds = append(out.Builds, b)
		}
	}
	return out, nil
}

// GetBuildInput holds parameters for retrieving a build.
type GetBuildInput struct {
	BuildID string `json:"build_id"`
}

// GetBuildOutput holds the retrieved build.
type GetBuildOutput struct {
	Build *model.Build `json:"build"`
}

// GetBuild retrieves a saved build.
func (u *UseCase) GetBuild(ctx context.Context, in *GetBuildInput) (*GetBuildOutput, error) {
	if in == nil || in.BuildID == "" {
		return nil, fmt.Errorf("BuildID is required")
	}
	b, err := u.Repos.Build.Get(ctx, in.BuildID)
	if err != nil {
		return nil, err
	}
	return &GetBuildOutput{Build: b}, nil
}

// DeleteBuildInput holds parameters for deleting a build.
type DeleteBuildInput struct {
	BuildID string `json:"build_id"`
}

// DeleteBuildOutput is empty on success.
type DeleteBuildOutput struct{}

// DeleteBuild removes a saved build.
func (u *UseCase) DeleteBuild(ctx context.Context, in *DeleteBuildInput) (*DeleteBuildOutput, error) {
	if in == nil || in.BuildID == "" {
		return nil, fmt.Errorf("BuildID is required")
	}
	if err := u.Repos.Build.Delete(ctx, in.BuildID); err != nil {
		return nil, err
	}
	return &DeleteBuildOutput{}, nil
}
