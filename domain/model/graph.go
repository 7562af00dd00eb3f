package model

import (
	"context"
	"fmt"
)

// ResourceKind classifies resources in the resource graph.
type ResourceKind string

const (
	KindNetwork            ResourceKind = "network"
	KindSubnet             ResourceKind = "subnet"
	KindSecurityGroup      ResourceKind = "security-group"
	KindCluster            ResourceKind = "cluster"
	KindCapacityGroup      ResourceKind = "capacity-group"
	KindFileSystem         ResourceKind = "file-system"
	KindBackupPlan         ResourceKind = "backup-plan"
	KindBackupSelection    ResourceKind = "backup-selection"
	KindRole               ResourceKind = "role"
	KindGrant              ResourceKind = "grant"
	KindAsset              ResourceKind = "asset"
	KindSecret             ResourceKind = "secret"
	KindWorkloadDefinition ResourceKind = "workload-definition"
	KindService            ResourceKind = "service"
	KindDNSZone            ResourceKind = "dns-zone"
	KindFunction           ResourceKind = "function"
	KindIngressRule        ResourceKind = "ingress-rule"
	KindEventRule          ResourceKind = "event-rule"
)

// ResourceRef identifies a resource in the graph. External refs point at
// resources that exist outside of the graph (adopted clusters, networks).
type ResourceRef struct {
	ID       string       `json:"id"`
	Kind     ResourceKind `json:"kind"`
	External bool         `json:"external,omitempty"`
}

// ExternalRef returns a reference to a resource not managed by the graph.
func ExternalRef(kind ResourceKind, id string) ResourceRef {
	return ResourceRef{ID: id, Kind: kind, External: true}
}

// IsZero reports whether r is unset.
func (r ResourceRef) IsZero() bool { return r.ID == "" }

// Attr returns a token resolved by the provisioning runtime to the named attribute
// of the resource. External refs resolve to their own ID.
func (r ResourceRef) Attr(name string) string {
	if r.External {
		return r.ID
	}
	return fmt.Sprintf("${%s.%s}", r.ID, name)
}

// Resource is a declared resource with provider-facing properties.
type Resource struct {
	ID         string         `json:"id"`
	Kind       ResourceKind   `json:"kind"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Ref returns a reference to r.
func (r Resource) Ref() ResourceRef { return ResourceRef{ID: r.ID, Kind: r.Kind} }

// Protocol is a network rule protocol.
type Protocol string

const (
	ProtocolTCP  Protocol = "tcp"
	ProtocolICMP Protocol = "icmp"
)

// AnyIPv4 is the source of rules open to any address.
const AnyIPv4 = "0.0.0.0/0"

// IngressRule allows inbound traffic on a connection boundary.
// For ICMP rules Port carries the ICMP type.
type IngressRule struct {
	Protocol    Protocol `json:"protocol"`
	Port        int      `json:"port"`
	Source      string   `json:"source"`
	Description string   `json:"description,omitempty"`
}

// IngressBinding is an ingress rule attached to a boundary.
type IngressBinding struct {
	ID       string      `json:"id"`
	Boundary ResourceRef `json:"boundary"`
	Rule     IngressRule `json:"rule"`
}

// EventPattern filters events delivered to an event rule target.
type EventPattern struct {
	Source     []string            `json:"source"`
	DetailType []string            `json:"detailType"`
	Detail     map[string][]string `json:"detail,omitempty"`
}

// EventRule delivers matching events to Target.
type EventRule struct {
	ID      string       `json:"id"`
	Pattern EventPattern `json:"pattern"`
	Target  ResourceRef  `json:"target"`
}

// Dependency records that From must be created after To.
type Dependency struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ResourceGraph is a snapshot of a built resource graph. Resources are in
// creation (topological) order.
type ResourceGraph struct {
	Name         string           `json:"name"`
	Resources    []Resource       `json:"resources"`
	Dependencies []Dependency     `json:"dependencies"`
	IngressRules []IngressBinding `json:"ingressRules"`
	EventRules   []EventRule      `json:"eventRules"`
}

// Find returns the resource with the given ID.
func (g *ResourceGraph) Find(id string) (Resource, bool) {
	for _, r := range g.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// ByKind returns all resources of the given kind.
func (g *ResourceGraph) ByKind(kind ResourceKind) []Resource {
	var out []Resource
	for _, r := range g.Resources {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// IngressFor returns rules attached to the boundary with the given ID.
func (g *ResourceGraph) IngressFor(boundaryID string) []IngressRule {
	var out []IngressRule
	for _, b := range g.IngressRules {
		if b.Boundary.ID == boundaryID {
			out = append(out, b.Rule)
		}
	}
	return out
}

// DependsOn reports whether an edge from -> to exists.
func (g *ResourceGraph) DependsOn(from, to string) bool {
	for _, d := range g.Dependencies {
		if d.From == from && d.To == to {
			return true
		}
	}
	return false
}

// GraphBuilder is the resource provisioning capability used during synthesis.
// Errors returned by a builder are provisioning errors and are not translated.
type GraphBuilder interface {
	// CreateResource declares a new resource. IDs are unique per graph.
	CreateResource(ctx context.Context, r Resource) (ResourceRef, error)
	// DependOn declares that dependent must be created after dependency.
	DependOn(ctx context.Context, dependent, dependency ResourceRef) error
	// AddIngressRule attaches an ingress rule to a connection boundary.
	AddIngressRule(ctx context.Context, boundary ResourceRef, rule IngressRule) (ResourceRef, error)
	// RegisterEventRule registers an event rule delivering to its target.
	RegisterEventRule(ctx context.Context, rule EventRule) (ResourceRef, error)
	// Graph returns a snapshot of the graph built so far.
	Graph() *ResourceGraph
}

// GraphPort creates graph builders.
type GraphPort interface {
	NewGraph(ctx context.Context, name string) (GraphBuilder, error)
}
