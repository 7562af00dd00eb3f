// Package graph is the in-memory resource graph used for synthesis.
package graph

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"

	dag "github.com/dominikbraun/graph"
	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/naming"
)

var (
	ErrDuplicateResource = errors.New("duplicate resource id")
	ErrUnknownResource   = errors.New("unknown resource")
	ErrCycle             = errors.New("dependency cycle")
	ErrInvalidRule       = errors.New("invalid rule")
)

// Port creates in-memory graph builders.
type Port struct{}

// NewPort returns a GraphPort backed by in-memory builders.
func NewPort() *Port { return &Port{} }

// NewGraph starts an empty graph.
func (p *Port) NewGraph(_ context.Context, name string) (model.GraphBuilder, error) {
	if name == "" {
		return nil, errors.New("graph name is required")
	}
	return NewBuilder(name), nil
}

type node struct {
	res model.Resource
	seq int
}

// Builder accumulates resources and edges. It is safe for concurrent use.
// Edges point from a dependency to its dependents, so a topological sort
// yields creation order.
type Builder struct {
	mu      sync.RWMutex
	name    string
	nodes   map[string]*node
	dag     dag.Graph[string, string]
	edges   []model.Dependency
	ingress []model.IngressBinding
	events  []model.EventRule
}

// NewBuilder returns an empty builder for graph name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*node),
		dag:   dag.New(dag.StringHash, dag.Directed(), dag.Acyclic(), dag.PreventCycles()),
	}
}

func (b *Builder) CreateResource(_ context.Context, r model.Resource) (model.ResourceRef, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.create(r)
}

func (b *Builder) create(r model.Resource) (model.ResourceRef, error) {
	if r.ID == "" {
		return model.ResourceRef{}, errors.New("resource id is required")
	}
	if r.Kind == "" {
		return model.ResourceRef{}, fmt.Errorf("resource %s: kind is required", r.ID)
	}
	if _, ok := b.nodes[r.ID]; ok {
		return model.ResourceRef{}, fmt.Errorf("%w: %s", ErrDuplicateResource, r.ID)
	}
	if err := b.dag.AddVertex(r.ID); err != nil {
		return model.ResourceRef{}, fmt.Errorf("add resource %s: %w", r.ID, err)
	}
	// Copy properties to avoid external mutation.
	r.Properties = maps.Clone(r.Properties)
	b.nodes[r.ID] = &node{res: r, seq: len(b.nodes)}
	return r.Ref(), nil
}

func (b *Builder) DependOn(_ context.Context, dependent, dependency model.ResourceRef) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dependOn(dependent, dependency)
}

func (b *Builder) dependOn(dependent, dependency model.ResourceRef) error {
	if dependent.External {
		return fmt.Errorf("dependent %s is external to the graph", dependent.ID)
	}
	// External resources already exist and impose no ordering.
	if dependency.External {
		if _, ok := b.nodes[dependent.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownResource, dependent.ID)
		}
		return nil
	}
	if dependent.ID == dependency.ID {
		return fmt.Errorf("%w: %s depends on itself", ErrCycle, dependent.ID)
	}
	err := b.dag.AddEdge(dependency.ID, dependent.ID)
	switch {
	case err == nil:
	case errors.Is(err, dag.ErrEdgeAlreadyExists):
		return nil
	case errors.Is(err, dag.ErrVertexNotFound):
		return fmt.Errorf("%w: %s -> %s: %v", ErrUnknownResource, dependent.ID, dependency.ID, err)
	case errors.Is(err, dag.ErrEdgeCreatesCycle):
		return fmt.Errorf("%w: %s -> %s", ErrCycle, dependent.ID, dependency.ID)
	default:
		return fmt.Errorf("depend %s on %s: %w", dependent.ID, dependency.ID, err)
	}
	b.edges = append(b.edges, model.Dependency{From: dependent.ID, To: dependency.ID})
	return nil
}

func (b *Builder) AddIngressRule(_ context.Context, boundary model.ResourceRef, rule model.IngressRule) (model.ResourceRef, error) {
	if err := validateRule(rule); err != nil {
		return model.ResourceRef{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if boundary.IsZero() {
		return model.ResourceRef{}, errors.New("ingress boundary is required")
	}
	if !boundary.External {
		if _, ok := b.nodes[boundary.ID]; !ok {
			return model.ResourceRef{}, fmt.Errorf("%w: %s", ErrUnknownResource, boundary.ID)
		}
	}
	port := strconv.Itoa(rule.Port)
	id := fmt.Sprintf("ingress-%s-%s-%s", rule.Protocol, port,
		naming.ShortHash(boundary.ID+"|"+string(rule.Protocol)+"|"+port+"|"+rule.Source, 6))
	props := map[string]any{
		"boundary": boundary.Attr("id"),
		"protocol": string(rule.Protocol),
		"port":     rule.Port,
		"source":   rule.Source,
	}
	if rule.Description != "" {
		props["description"] = rule.Description
	}
	ref, err := b.create(model.Resource{ID: id, Kind: model.KindIngressRule, Properties: props})
	if err != nil {
		return model.ResourceRef{}, err
	}
	if err := b.dependOn(ref, boundary); err != nil {
		return model.ResourceRef{}, err
	}
	b.ingress = append(b.ingress, model.IngressBinding{ID: id, Boundary: boundary, Rule: rule})
	return ref, nil
}

func validateRule(rule model.IngressRule) error {
	switch rule.Protocol {
	case model.ProtocolTCP:
		if rule.Port < 1 || rule.Port > 65535 {
			return fmt.Errorf("%w: tcp port %d out of range", ErrInvalidRule, rule.Port)
		}
	case model.ProtocolICMP:
		if rule.Port < 0 || rule.Port > 255 {
			return fmt.Errorf("%w: icmp type %d out of range", ErrInvalidRule, rule.Port)
		}
	default:
		return fmt.Errorf("%w: unsupported protocol %q", ErrInvalidRule, rule.Protocol)
	}
	if rule.Source == "" {
		return fmt.Errorf("%w: source is required", ErrInvalidRule)
	}
	return nil
}

func (b *Builder) RegisterEventRule(_ context.Context, rule model.EventRule) (model.ResourceRef, error) {
	if len(rule.Pattern.Source) == 0 {
		return model.ResourceRef{}, fmt.Errorf("%w: event rule %s has no source", ErrInvalidRule, rule.ID)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if rule.Target.External {
		return model.ResourceRef{}, fmt.Errorf("event rule target %s is external to the graph", rule.Target.ID)
	}
	if _, ok := b.nodes[rule.Target.ID]; !ok {
		return model.ResourceRef{}, fmt.Errorf("%w: %s", ErrUnknownResource, rule.Target.ID)
	}
	props := map[string]any{
		"source":     rule.Pattern.Source,
		"detailType": rule.Pattern.DetailType,
		"target":     rule.Target.Attr("arn"),
	}
	if len(rule.Pattern.Detail) > 0 {
		props["detail"] = rule.Pattern.Detail
	}
	ref, err := b.create(model.Resource{ID: rule.ID, Kind: model.KindEventRule, Properties: props})
	if err != nil {
		return model.ResourceRef{}, err
	}
	if err := b.dependOn(ref, rule.Target); err != nil {
		return model.ResourceRef{}, err
	}
	b.events = append(b.events, rule)
	return ref, nil
}

// Graph returns a snapshot with resources in dependency order. Ties keep
// creation order so output is deterministic.
func (b *Builder) Graph() *model.ResourceGraph {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids, err := dag.StableTopologicalSort(b.dag, func(x, y string) bool {
		return b.nodes[x].seq < b.nodes[y].seq
	})
	if err != nil {
		// Unreachable: cycles are rejected when edges are added.
		panic(fmt.Sprintf("graph %s: %v", b.name, err))
	}
	resources := make([]model.Resource, 0, len(ids))
	for _, id := range ids {
		r := b.nodes[id].res
		r.Properties = maps.Clone(r.Properties)
		resources = append(resources, r)
	}

	return &model.ResourceGraph{
		Name:         b.name,
		Resources:    resources,
		Dependencies: append([]model.Dependency(nil), b.edges...),
		IngressRules: append([]model.IngressBinding(nil), b.ingress...),
		EventRules:   append([]model.EventRule(nil), b.events...),
	}
}

var (
	_ model.GraphPort    = (*Port)(nil)
	_ model.GraphBuilder = (*Builder)(nil)
)
