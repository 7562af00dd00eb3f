package stack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kompox/mcstack/domain/model"
)

func existingCluster() *model.ExistingCluster {
	return &model.ExistingCluster{
		Name:              "games",
		ARN:               "arn:aws:ecs:us-east-1:123456789012:cluster/games",
		Network:           model.NetworkRef{ID: "vpc-0abc"},
		SecurityGroupID:   "sg-0abc",
		CapacityGroupName: "games-asg",
	}
}

func provisionedStack() *model.Stack {
	return &model.Stack{Name: "survival", ClusterOptions: &model.ClusterOptions{InstanceType: "t3.medium"}}
}

func TestValidate(t *testing.T) {
	pluginsDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(pluginsDir, "mod.jar"), []byte("jar"), 0o644); err != nil {
		t.Fatal(err)
	}
	noCapacity := existingCluster()
	noCapacity.CapacityGroupName = ""

	tests := []struct {
		name        string
		mutate      func(s *model.Stack)
		wantErr     string
		wantAdopted bool
	}{
		{name: "provisioned", mutate: func(s *model.Stack) {}},
		{
			name:        "adopted",
			mutate:      func(s *model.Stack) { s.ClusterOptions = nil; s.ExistingCluster = existingCluster() },
			wantAdopted: true,
		},
		{
			name:    "both",
			mutate:  func(s *model.Stack) { s.ExistingCluster = existingCluster() },
			wantErr: "cannot be combined",
		},
		{
			name:    "neither",
			mutate:  func(s *model.Stack) { s.ClusterOptions = nil },
			wantErr: "one of existingCluster or clusterOptions is required",
		},
		{
			name:    "existing without capacity",
			mutate:  func(s *model.Stack) { s.ClusterOptions = nil; s.ExistingCluster = noCapacity },
			wantErr: "no compute capacity",
		},
		{
			name:    "missing instance type",
			mutate:  func(s *model.Stack) { s.ClusterOptions.InstanceType = "" },
			wantErr: "clusterOptions.instanceType",
		},
		{
			name:    "bad name",
			mutate:  func(s *model.Stack) { s.Name = "Survival_World" },
			wantErr: "name",
		},
		{
			name:    "bad difficulty",
			mutate:  func(s *model.Stack) { s.Server = &model.ServerOptions{Difficulty: "insane"} },
			wantErr: "server.difficulty",
		},
		{
			name:    "custom domain without zone",
			mutate:  func(s *model.Stack) { s.CustomDomain = &model.CustomDomain{DomainName: "mc.example.com"} },
			wantErr: "customDomain.hostedZoneId",
		},
		{
			name:    "backup without schedule",
			mutate:  func(s *model.Stack) { s.Backup = &model.BackupRule{DeleteAfterDays: 30} },
			wantErr: "backup.schedule",
		},
		{
			name:    "missing plugins path",
			mutate:  func(s *model.Stack) { s.PluginsPath = filepath.Join(pluginsDir, "missing") },
			wantErr: "plugins",
		},
		{name: "plugins", mutate: func(s *model.Stack) { s.PluginsPath = pluginsDir }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := provisionedStack()
			tt.mutate(s)
			u := &UseCase{}
			out, err := u.Validate(context.Background(), &ValidateInput{Stack: s})
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !errors.Is(err, model.ErrConfiguration) {
					t.Errorf("error %v is not ErrConfiguration", err)
				}
				var cerr *model.ConfigurationError
				if !errors.As(err, &cerr) {
					t.Errorf("error %T is not *ConfigurationError", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if out.Adopted != tt.wantAdopted {
				t.Errorf("Adopted = %v, want %v", out.Adopted, tt.wantAdopted)
			}
			if (s.PluginsPath != "") != (out.PluginsHash != "") {
				t.Errorf("PluginsHash = %q for plugins path %q", out.PluginsHash, s.PluginsPath)
			}
		})
	}
}

func TestValidate_NilInput(t *testing.T) {
	u := &UseCase{}
	if _, err := u.Validate(context.Background(), nil); err == nil {
		t.Fatal("Validate(nil) error = nil, want error")
	}
}
