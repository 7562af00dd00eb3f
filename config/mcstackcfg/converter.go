package mcstackcfg

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/kompox/mcstack/domain/model"
)

// ToModel converts the configuration to the stack model. Plugins paths are
// resolved relative to the directory of the loaded file.
func (r *Root) ToModel() (*model.Stack, error) {
	mem, err := r.memoryReservationMiB()
	if err != nil {
		return nil, model.NewConfigurationError("memoryReservation", "%v", err)
	}
	s := &model.Stack{
		Name:                 r.Name,
		ImageTag:             r.ImageTag,
		RCON:                 r.RCON,
		MemoryReservationMiB: mem,
	}
	if r.Plugins != "" {
		s.PluginsPath = r.Plugins
		if !filepath.IsAbs(s.PluginsPath) && r.dir != "" {
			s.PluginsPath = filepath.Join(r.dir, s.PluginsPath)
		}
	}
	if c := r.ExistingCluster; c != nil {
		s.ExistingCluster = &model.ExistingCluster{
			Name:              c.Name,
			ARN:               c.ARN,
			Network:           model.NetworkRef{ID: c.VPCID, AvailabilityZones: append([]string(nil), c.AvailabilityZones...)},
			SecurityGroupID:   c.SecurityGroupID,
			CapacityGroupName: c.CapacityGroup,
		}
	}
	if o := r.ClusterOptions; o != nil {
		s.ClusterOptions = &model.ClusterOptions{
			InstanceType: o.InstanceType,
			KeyName:      o.KeyName,
			SpotPrice:    o.SpotPrice,
		}
		if o.VPCID != "" {
			s.ClusterOptions.Network = &model.NetworkRef{ID: o.VPCID, AvailabilityZones: append([]string(nil), o.AvailabilityZones...)}
		}
	}
	if v := r.Server; v != nil {
		s.Server = &model.ServerOptions{
			Version:    v.Version,
			Difficulty: model.Difficulty(v.Difficulty),
			Ops:        append([]string(nil), v.Ops...),
			Mods:       append([]string(nil), v.Mods...),
			MOTD:       v.MOTD,
		}
	}
	if b := r.Backup; b != nil {
		s.Backup = &model.BackupRule{
			Name:                 b.Name,
			Schedule:             b.Schedule,
			DeleteAfterDays:      b.DeleteAfterDays,
			ColdStorageAfterDays: b.ColdStorageAfterDays,
		}
	}
	if d := r.CustomDomain; d != nil {
		s.CustomDomain = &model.CustomDomain{HostedZoneID: d.HostedZoneID, DomainName: d.DomainName}
	}
	return s, nil
}

// Schema returns the JSON schema of the YAML configuration file.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		FieldNameTag:   "yaml",
		ExpandedStruct: true,
	}
	data, err := json.MarshalIndent(reflector.Reflect(&Root{}), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
