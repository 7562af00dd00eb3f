package compose

import (
	"context"
	"strings"
	"testing"

	"github.com/compose-spec/compose-go/v2/types"
	"github.com/kompox/mcstack/domain/model"
)

func serverService(t *testing.T, proj *types.Project) types.ServiceConfig {
	t.Helper()
	for _, s := range proj.Services {
		if s.Name == ServiceName {
			return s
		}
	}
	t.Fatalf("service %s not found", ServiceName)
	return types.ServiceConfig{}
}

func TestRender(t *testing.T) {
	env := &model.DerivedEnvironment{
		Environment: map[string]string{
			model.EnvEULA:    "TRUE",
			model.EnvType:    "FORGE",
			model.EnvModpack: "${plugins-asset.url}",
		},
		Secrets: map[string]model.ResourceRef{},
	}
	out, err := Render(context.Background(), &Input{
		ProjectName:          "survival",
		Image:                "itzg/minecraft-server:latest",
		MemoryReservationMiB: 1024,
		Environment:          env,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := serverService(t, out.Project)
	if s.Image != "itzg/minecraft-server:latest" {
		t.Errorf("Image = %q", s.Image)
	}
	if v := s.Environment[model.EnvModpack]; v == nil || *v != "${plugins-asset.url}" {
		t.Errorf("MODPACK = %v, want token preserved", v)
	}
	if int64(s.MemReservation) != 1024*1024*1024 {
		t.Errorf("MemReservation = %d, want 1GiB", s.MemReservation)
	}
	if len(s.Ports) != 1 || s.Ports[0].Target != 25565 {
		t.Errorf("Ports = %+v", s.Ports)
	}
	if len(s.Volumes) != 1 || s.Volumes[0].Source != VolumeName || s.Volumes[0].Target != "/data" {
		t.Errorf("Volumes = %+v", s.Volumes)
	}
	if len(s.Secrets) != 0 {
		t.Errorf("Secrets = %+v, want none", s.Secrets)
	}
	if !strings.Contains(string(out.Content), "image: itzg/minecraft-server:latest") {
		t.Errorf("content = %s", out.Content)
	}
}

func TestRender_RCON(t *testing.T) {
	env := &model.DerivedEnvironment{
		Environment: map[string]string{model.EnvEULA: "TRUE", model.EnvEnableRCON: "true"},
		Secrets:     map[string]model.ResourceRef{model.SecretRCONPassword: {ID: "rcon-secret", Kind: model.KindSecret}},
	}
	out, err := Render(context.Background(), &Input{
		ProjectName: "survival",
		Image:       "itzg/minecraft-server:latest",
		Environment: env,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := serverService(t, out.Project)
	if len(s.Ports) != 2 || s.Ports[1].Target != 25575 {
		t.Errorf("Ports = %+v", s.Ports)
	}
	if len(s.Secrets) != 1 || s.Secrets[0].Source != RCONSecretName {
		t.Errorf("Secrets = %+v", s.Secrets)
	}
	if v := s.Environment["RCON_PASSWORD_FILE"]; v == nil || *v != "/run/secrets/rcon_password" {
		t.Errorf("RCON_PASSWORD_FILE = %v", v)
	}
	if _, ok := out.Project.Secrets[RCONSecretName]; !ok {
		t.Errorf("project secrets = %v", out.Project.Secrets)
	}
}

func TestRender_Invalid(t *testing.T) {
	if _, err := Render(context.Background(), &Input{ProjectName: "x", Image: "y"}); err == nil {
		t.Error("Render() without environment error = nil, want error")
	}
	env := &model.DerivedEnvironment{Environment: map[string]string{}}
	if _, err := Render(context.Background(), &Input{Image: "y", Environment: env}); err == nil {
		t.Error("Render() without project name error = nil, want error")
	}
}
