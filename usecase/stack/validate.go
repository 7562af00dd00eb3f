package stack

import (
	"context"
	"fmt"

	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/naming"
)

// ValidateInput holds parameters for stack validation.
type ValidateInput struct {
	Stack *model.Stack `json:"stack"`
}

// ValidateOutput describes a stack that passed validation.
type ValidateOutput struct {
	// Adopted is true when an existing cluster is reused.
	Adopted bool `json:"adopted"`
	// PluginsHash is the content hash of the plugins source, empty when unset.
	PluginsHash string `json:"pluginsHash,omitempty"`
}

// Validate checks the stack invariants without creating any resource.
func (u *UseCase) Validate(ctx context.Context, in *ValidateInput) (*ValidateOutput, error) {
	if in == nil || in.Stack == nil {
		return nil, fmt.Errorf("stack is required")
	}
	v, err := validateStack(in.Stack)
	if err != nil {
		return nil, err
	}
	_, adopted := v.source.(model.AdoptedCluster)
	return &ValidateOutput{Adopted: adopted, PluginsHash: v.pluginsHash}, nil
}

// validated is the result of validateStack consumed by synthesis.
type validated struct {
	source      model.ClusterSource
	pluginsHash string
}

// validateStack enforces the cross-option invariants. Every failure is a
// *model.ConfigurationError.
func validateStack(s *model.Stack) (*validated, error) {
	if err := naming.ValidateStackName(s.Name); err != nil {
		return nil, model.NewConfigurationError("name", "%v", err)
	}

	source, err := clusterSource(s)
	if err != nil {
		return nil, err
	}

	if s.MemoryReservationMiB < 0 {
		return nil, model.NewConfigurationError("memoryReservation", "must be positive, got %d", s.MemoryReservationMiB)
	}
	if s.Server != nil && s.Server.Difficulty != "" && !s.Server.Difficulty.Valid() {
		return nil, model.NewConfigurationError("server.difficulty", "must be one of %v, got %q", model.Difficulties, s.Server.Difficulty)
	}
	if b := s.Backup; b != nil {
		if b.Schedule == "" {
			return nil, model.NewConfigurationError("backup.schedule", "is required")
		}
		if b.DeleteAfterDays < 0 || b.ColdStorageAfterDays < 0 {
			return nil, model.NewConfigurationError("backup", "retention days must not be negative")
		}
		if b.DeleteAfterDays > 0 && b.ColdStorageAfterDays > 0 && b.DeleteAfterDays < b.ColdStorageAfterDays+90 {
			return nil, model.NewConfigurationError("backup.deleteAfterDays", "must be at least 90 days after coldStorageAfterDays")
		}
	}
	if d := s.CustomDomain; d != nil {
		if d.HostedZoneID == "" {
			return nil, model.NewConfigurationError("customDomain.hostedZoneId", "is required")
		}
		if d.DomainName == "" {
			return nil, model.NewConfigurationError("customDomain.domainName", "is required")
		}
	}

	v := &validated{source: source}
	if s.PluginsPath != "" {
		hash, err := naming.ContentHash(s.PluginsPath)
		if err != nil {
			return nil, model.NewConfigurationError("plugins", "%v", err)
		}
		v.pluginsHash = hash
	}
	return v, nil
}

// clusterSource turns the two optional cluster fields into a tagged variant.
func clusterSource(s *model.Stack) (model.ClusterSource, error) {
	switch {
	case s.ExistingCluster != nil && s.ClusterOptions != nil:
		return nil, model.NewConfigurationError("existingCluster", "cannot be combined with clusterOptions")
	case s.ExistingCluster == nil && s.ClusterOptions == nil:
		return nil, model.NewConfigurationError("", "one of existingCluster or clusterOptions is required")
	case s.ExistingCluster != nil:
		c := s.ExistingCluster
		if !c.HasCapacity() {
			return nil, model.NewConfigurationError("existingCluster.capacityGroup", "cluster has no compute capacity attached")
		}
		if c.Name == "" && c.ARN == "" {
			return nil, model.NewConfigurationError("existingCluster.name", "name or arn is required")
		}
		if c.Network.ID == "" {
			return nil, model.NewConfigurationError("existingCluster.vpcId", "is required")
		}
		if c.SecurityGroupID == "" {
			return nil, model.NewConfigurationError("existingCluster.securityGroupId", "is required")
		}
		return model.AdoptedCluster{Cluster: *c}, nil
	default:
		o := s.ClusterOptions
		if o.InstanceType == "" {
			return nil, model.NewConfigurationError("clusterOptions.instanceType", "is required")
		}
		if o.Network != nil && o.Network.ID == "" {
			return nil, model.NewConfigurationError("clusterOptions.vpcId", "must not be empty")
		}
		return model.ProvisionedCluster{Options: *o}, nil
	}
}
