package compose

import (
	"context"
	"fmt"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"github.com/kompox/mcstack/internal/logging"
)

// loadProject reads a rendered document back through the compose-go loader
// and checks that the server service survived normalization. Host
// environment variables are not interpolated.
func loadProject(ctx context.Context, name, workingDir string, content []byte) (*types.Project, error) {
	if workingDir == "" {
		workingDir = "."
	}
	details := types.ConfigDetails{
		WorkingDir:  workingDir,
		ConfigFiles: []types.ConfigFile{{Filename: "compose.yml", Content: content}},
		Environment: map[string]string{},
	}
	raw, err := loader.LoadModelWithContext(ctx, details, func(o *loader.Options) {
		o.SetProjectName(name, true)
		o.SkipInclude = true
	})
	if err != nil {
		return nil, fmt.Errorf("load compose model: %w", err)
	}
	var proj *types.Project
	if err := loader.Transform(raw, &proj); err != nil {
		return nil, fmt.Errorf("transform compose model: %w", err)
	}
	if _, ok := proj.Services[ServiceName]; !ok {
		return nil, fmt.Errorf("compose project %s has no %s service", proj.Name, ServiceName)
	}
	logging.FromContext(ctx).Debug(ctx, "compose project loaded", "project", proj.Name, "services", len(proj.Services))
	return proj, nil
}
