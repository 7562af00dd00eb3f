package mcstackcfg

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kompox/mcstack/domain/model"
)

func TestRoot_ToModel(t *testing.T) {
	r := &Root{
		Name:              "survival",
		ImageTag:          "java17",
		ClusterOptions:    &ClusterOptions{InstanceType: "t3.medium", VPCID: "vpc-1", AvailabilityZones: []string{"us-east-1a"}},
		Server:            &Server{Difficulty: "easy", Ops: []string{"a", "b"}},
		Plugins:           "plugins",
		Backup:            &Backup{Schedule: "cron(0 5 * * ? *)", ColdStorageAfterDays: 7},
		RCON:              true,
		MemoryReservation: "3Gi",
		CustomDomain:      &CustomDomain{HostedZoneID: "Z1", DomainName: "mc.example.com"},
		dir:               "/etc/mcstack",
	}
	s, err := r.ToModel()
	if err != nil {
		t.Fatalf("ToModel() error = %v", err)
	}
	want := &model.Stack{
		Name:     "survival",
		ImageTag: "java17",
		ClusterOptions: &model.ClusterOptions{
			InstanceType: "t3.medium",
			Network:      &model.NetworkRef{ID: "vpc-1", AvailabilityZones: []string{"us-east-1a"}},
		},
		Server:               &model.ServerOptions{Difficulty: model.DifficultyEasy, Ops: []string{"a", "b"}},
		PluginsPath:          filepath.Join("/etc/mcstack", "plugins"),
		Backup:               &model.BackupRule{Schedule: "cron(0 5 * * ? *)", ColdStorageAfterDays: 7},
		RCON:                 true,
		MemoryReservationMiB: 3072,
		CustomDomain:         &model.CustomDomain{HostedZoneID: "Z1", DomainName: "mc.example.com"},
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("ToModel() = %+v, want %+v", s, want)
	}
}

func TestRoot_ToModelExisting(t *testing.T) {
	r := &Root{Name: "creative", ExistingCluster: validExisting(), Plugins: "/abs/plugins", dir: "/etc"}
	s, err := r.ToModel()
	if err != nil {
		t.Fatalf("ToModel() error = %v", err)
	}
	if s.ClusterOptions != nil {
		t.Errorf("ClusterOptions = %+v, want nil", s.ClusterOptions)
	}
	c := s.ExistingCluster
	if c == nil || !c.HasCapacity() || c.Network.ID != "vpc-0abc" || c.SecurityGroupID != "sg-0abc" {
		t.Errorf("ExistingCluster = %+v", c)
	}
	if s.PluginsPath != "/abs/plugins" {
		t.Errorf("PluginsPath = %q, want /abs/plugins", s.PluginsPath)
	}
	if s.MemoryReservationMiB != model.DefaultMemoryReservationMiB {
		t.Errorf("MemoryReservationMiB = %d, want default", s.MemoryReservationMiB)
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", data)
	}
	for _, key := range []string{"name", "existingCluster", "clusterOptions", "memoryReservation", "customDomain"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
}
