package stack

import (
	"context"
	"fmt"

	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/naming"
)

// synthContext is the state shared by the assembly steps of one synthesis.
type synthContext struct {
	stack   *model.Stack
	names   naming.Hashes
	builder model.GraphBuilder
	cluster *model.ResolvedCluster

	fileSystem model.ResourceRef
	role       model.ResourceRef
	workload   *workloadDraft
}

// workloadDraft collects the workload definition until it is finalized.
type workloadDraft struct {
	volumes   []map[string]any
	mounts    []map[string]any
	dependsOn []model.ResourceRef
}

// contribution is what a feature hands to the environment phase.
type contribution struct {
	pluginEndpoint string
	rconSecret     *model.ResourceRef
}

// feature is a conditionally enabled composer whose contribution feeds the environment.
type feature interface {
	name() string
	enabled(s *model.Stack) bool
	compose(ctx context.Context, sc *synthContext) (contribution, error)
}

// runFeatures runs every enabled feature in order (phase one) and folds their
// contributions into a single state. Callers read the state only after this returns.
func runFeatures(ctx context.Context, sc *synthContext, features []feature) (model.ComposerState, []string, error) {
	var state model.ComposerState
	var enabled []string
	for _, f := range features {
		if !f.enabled(sc.stack) {
			continue
		}
		c, err := f.compose(ctx, sc)
		if err != nil {
			return model.ComposerState{}, nil, fmt.Errorf("%s: %w", f.name(), err)
		}
		if err := fold(&state, c); err != nil {
			return model.ComposerState{}, nil, fmt.Errorf("%s: %w", f.name(), err)
		}
		enabled = append(enabled, f.name())
	}
	return state, enabled, nil
}

// fold merges c into state. Each field may be written once.
func fold(state *model.ComposerState, c contribution) error {
	if c.pluginEndpoint != "" {
		if state.PluginEndpoint != "" {
			return fmt.Errorf("plugin endpoint contributed twice")
		}
		state.PluginEndpoint = c.pluginEndpoint
	}
	if c.rconSecret != nil {
		if state.RCONSecret != nil {
			return fmt.Errorf("rcon secret contributed twice")
		}
		ref := *c.rconSecret
		state.RCONSecret = &ref
	}
	return nil
}

// createGrant declares a permission for principal on resource.
func createGrant(ctx context.Context, b model.GraphBuilder, id, principal string, actions []string, resource string, deps ...model.ResourceRef) (model.ResourceRef, error) {
	ref, err := b.CreateResource(ctx, model.Resource{
		ID:   id,
		Kind: model.KindGrant,
		Properties: map[string]any{
			"principal": principal,
			"actions":   actions,
			"resource":  resource,
		},
	})
	if err != nil {
		return model.ResourceRef{}, err
	}
	for _, d := range deps {
		if err := b.DependOn(ctx, ref, d); err != nil {
			return model.ResourceRef{}, err
		}
	}
	return ref, nil
}
