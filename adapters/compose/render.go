// Package compose renders a synthesized workload as a compose project for local runs.
package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/types"
	"github.com/kompox/mcstack/domain/model"
	"gopkg.in/yaml.v3"
)

// Names used in the rendered project.
const (
	ServiceName    = "server"
	VolumeName     = "data"
	RCONSecretName = "rcon_password"
	// RCONSecretFile is the default local file holding the remote console password.
	RCONSecretFile = "./rcon_password.txt"
)

// Input describes the workload to render.
type Input struct {
	ProjectName          string
	Image                string
	MemoryReservationMiB int
	Environment          *model.DerivedEnvironment
	// RCONSecretFile overrides RCONSecretFile.
	RCONSecretFile string
	// WorkingDir is the directory relative paths resolve against. Defaults to ".".
	WorkingDir string
}

// Output holds the compose document and its loaded project.
type Output struct {
	Content []byte
	Project *types.Project
}

type file struct {
	Name     string                 `yaml:"name"`
	Services map[string]service     `yaml:"services"`
	Volumes  map[string]struct{}    `yaml:"volumes"`
	Secrets  map[string]secretEntry `yaml:"secrets,omitempty"`
}

type service struct {
	Image          string            `yaml:"image"`
	Restart        string            `yaml:"restart"`
	MemReservation string            `yaml:"mem_reservation,omitempty"`
	Environment    map[string]string `yaml:"environment"`
	Ports          []string          `yaml:"ports"`
	Volumes        []string          `yaml:"volumes"`
	Secrets        []string          `yaml:"secrets,omitempty"`
}

type secretEntry struct {
	File string `yaml:"file"`
}

// Render builds the compose document and validates it by loading it back.
func Render(ctx context.Context, in *Input) (*Output, error) {
	if in == nil || in.Environment == nil {
		return nil, fmt.Errorf("environment is required")
	}
	if in.ProjectName == "" || in.Image == "" {
		return nil, fmt.Errorf("project name and image are required")
	}

	svc := service{
		Image:       in.Image,
		Restart:     "unless-stopped",
		Environment: make(map[string]string, len(in.Environment.Environment)),
		Ports:       []string{port(model.ProtocolTCP, 25565)},
		Volumes:     []string{VolumeName + ":/data"},
	}
	if in.MemoryReservationMiB > 0 {
		svc.MemReservation = strconv.Itoa(in.MemoryReservationMiB) + "m"
	}
	for k, v := range in.Environment.Environment {
		// Deploy-time tokens like ${asset.url} are not compose variables.
		svc.Environment[k] = strings.ReplaceAll(v, "$", "$$")
	}

	f := file{
		Name:     in.ProjectName,
		Services: map[string]service{ServiceName: svc},
		Volumes:  map[string]struct{}{VolumeName: {}},
	}
	if _, ok := in.Environment.Secrets[model.SecretRCONPassword]; ok {
		path := in.RCONSecretFile
		if path == "" {
			path = RCONSecretFile
		}
		svc.Ports = append(svc.Ports, port(model.ProtocolTCP, 25575))
		svc.Secrets = []string{RCONSecretName}
		svc.Environment[model.SecretRCONPassword+"_FILE"] = "/run/secrets/" + RCONSecretName
		f.Services[ServiceName] = svc
		f.Secrets = map[string]secretEntry{RCONSecretName: {File: path}}
	}

	content, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("marshal compose: %w", err)
	}
	proj, err := loadProject(ctx, in.ProjectName, in.WorkingDir, content)
	if err != nil {
		return nil, err
	}
	return &Output{Content: content, Project: proj}, nil
}

func port(proto model.Protocol, p int) string {
	return fmt.Sprintf("%d:%d/%s", p, p, proto)
}
