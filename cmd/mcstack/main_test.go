package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/usecase/stack"
)

const testConfig = `version: v1
name: survival
clusterOptions:
  instanceType: t3.medium
server:
  difficulty: normal
  ops: [alice]
rcon: true
memoryReservation: 2Gi
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcstack.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root, sink := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--log-output", "none"}, args...))
	err := execute(context.Background(), root, sink)
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "mcstack version ") {
		t.Errorf("output = %q, want mcstack version prefix", out)
	}
}

func TestValidateCommand(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	out, err := run(t, "", "-C", cfg, "validate")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if strings.TrimSpace(out) != "stack=survival cluster=provisioned" {
		t.Errorf("output = %q", out)
	}

	bad := writeConfig(t, "version: v1\nname: Bad_Name\n")
	_, err = run(t, "", "-C", bad, "validate")
	if !errors.Is(err, model.ErrConfiguration) {
		t.Errorf("validate error = %v, want ErrConfiguration", err)
	}
}

func TestFailedCommandClosesLogFile(t *testing.T) {
	bad := writeConfig(t, "version: v1\nname: Bad_Name\n")
	logPath := filepath.Join(t.TempDir(), "logs", "mcstack.log")
	root, sink := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--log-output", logPath, "-C", bad, "validate"})

	err := execute(context.Background(), root, sink)
	if !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("execute() error = %v, want ErrConfiguration", err)
	}
	if sink.out != nil {
		t.Error("log output still open after failed command")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Failed:") {
		t.Errorf("log file = %q, want failure message", data)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSynthCommand(t *testing.T) {
	cfg := writeConfig(t, testConfig)

	out, err := run(t, "", "-C", cfg, "synth")
	if err != nil {
		t.Fatalf("synth error = %v", err)
	}
	var got stack.SynthOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode synth output: %v", err)
	}
	if got.Graph == nil || len(got.Graph.Resources) == 0 {
		t.Fatalf("graph is empty: %s", out)
	}
	if got.BuildID != "" {
		t.Errorf("BuildID = %q, want empty without --save", got.BuildID)
	}
	if _, ok := got.Graph.Find("rcon-secret"); !ok {
		t.Errorf("graph has no rcon-secret")
	}

	out, err = run(t, "", "-C", cfg, "synth", "-o", "yaml")
	if err != nil {
		t.Fatalf("synth -o yaml error = %v", err)
	}
	for _, want := range []string{"resources:", "kind: capacity-group", "ingressRules:"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q", want)
		}
	}

	if _, err := run(t, "", "-C", cfg, "synth", "-o", "toml"); err == nil {
		t.Errorf("expected error for unsupported output format")
	}
}

func TestEnvCommand(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	out, err := run(t, "", "-C", cfg, "env")
	if err != nil {
		t.Fatalf("env error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"DIFFICULTY=normal",
		"ENABLE_RCON=true",
		"EULA=TRUE",
		"FORCE_REDOWNLOAD=true",
		"OPS=alice",
		"OVERRIDE_SERVER_PROPERTIES=true",
		"TYPE=FORGE",
		"RCON_PASSWORD=<secret:rcon-secret>",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("env output = %q, want %q", lines, want)
	}
}

func TestComposeCommand(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	dest := filepath.Join(t.TempDir(), "compose.yml")
	if _, err := run(t, "", "-C", cfg, "compose", "--out", dest); err != nil {
		t.Fatalf("compose error = %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read compose file: %v", err)
	}
	for _, want := range []string{"itzg/minecraft-server:latest", "2048m", "25575:25575/tcp", "rcon_password"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("compose file missing %q:\n%s", want, data)
		}
	}
}

func TestBuildsCommands(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	db := "sqlite:" + filepath.Join(t.TempDir(), "builds.db")

	out, err := run(t, "", "-C", cfg, "--db-url", db, "synth", "--save")
	if err != nil {
		t.Fatalf("synth --save error = %v", err)
	}
	var synth stack.SynthOutput
	if err := json.Unmarshal([]byte(out), &synth); err != nil {
		t.Fatalf("decode synth output: %v", err)
	}
	if synth.BuildID == "" {
		t.Fatalf("BuildID is empty")
	}

	out, err = run(t, "", "--db-url", db, "builds", "list", "--stack", "survival")
	if err != nil {
		t.Fatalf("builds list error = %v", err)
	}
	if n := strings.Count(out, "\n"); n != 1 || !strings.Contains(out, synth.BuildID) {
		t.Errorf("builds list = %q, want one line with %s", out, synth.BuildID)
	}

	out, err = run(t, "", "--db-url", db, "builds", "get", synth.BuildID)
	if err != nil {
		t.Fatalf("builds get error = %v", err)
	}
	var b model.Build
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode build: %v", err)
	}
	if b.StackName != "survival" || b.Graph == nil || len(b.Graph.Resources) != len(synth.Graph.Resources) {
		t.Errorf("build = %+v", b)
	}

	if _, err := run(t, "", "--db-url", db, "builds", "delete", synth.BuildID); err != nil {
		t.Fatalf("builds delete error = %v", err)
	}
	_, err = run(t, "", "--db-url", db, "builds", "get", synth.BuildID)
	if !errors.Is(err, model.ErrBuildNotFound) {
		t.Errorf("builds get after delete error = %v, want ErrBuildNotFound", err)
	}
}

func TestUnsupportedDBURL(t *testing.T) {
	_, err := run(t, "", "--db-url", "postgres://localhost/db", "builds", "list")
	if err == nil || !strings.Contains(err.Error(), "unsupported db scheme") {
		t.Errorf("error = %v, want unsupported db scheme", err)
	}
}

type fakeInstances map[string]string

func (f fakeInstances) InstancePublicIP(_ context.Context, id string) (string, error) {
	ip, ok := f[id]
	if !ok {
		return "", errors.New("instance not found")
	}
	return ip, nil
}

type fakeRecords struct{ upserts []model.DNSRecordSet }

func (f *fakeRecords) DNSUpsert(_ context.Context, _ string, rset model.DNSRecordSet) error {
	f.upserts = append(f.upserts, rset)
	return nil
}

func TestDNSUpdateCommand(t *testing.T) {
	records := &fakeRecords{}
	orig := newDNSPorts
	newDNSPorts = func(string) (model.InstancePort, model.DNSPort, error) {
		return fakeInstances{"i-0abc": "203.0.113.10"}, records, nil
	}
	t.Cleanup(func() { newDNSPorts = orig })

	event := `{"detail":{"EC2InstanceId":"i-0abc"}}`
	out, err := run(t, event, "dns", "update", "--hosted-zone-id", "Z1", "--domain-name", "mc.example.com.")
	if err != nil {
		t.Fatalf("dns update error = %v", err)
	}
	if !strings.Contains(out, `"instance_id": "i-0abc"`) {
		t.Errorf("output = %s", out)
	}
	if len(records.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(records.upserts))
	}
	got := records.upserts[0]
	if got.FQDN != "mc.example.com" || got.TTL != 120 || got.RData[0] != "203.0.113.10" {
		t.Errorf("upsert = %+v", got)
	}

	if _, err := run(t, event, "dns", "update", "--hosted-zone-id", "Z1", "--domain-name", "mc.example.com", "--dry-run"); err != nil {
		t.Fatalf("dns update --dry-run error = %v", err)
	}
	if len(records.upserts) != 1 {
		t.Errorf("dry run applied a record")
	}
}

func TestConfigSchemaCommand(t *testing.T) {
	out, err := run(t, "", "config", "schema")
	if err != nil {
		t.Fatalf("config schema error = %v", err)
	}
	if !json.Valid([]byte(out)) || !strings.Contains(out, "clusterOptions") {
		t.Errorf("schema output = %s", out)
	}
}
