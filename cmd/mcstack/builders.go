package main

import (
	"fmt"
	"strings"

	"github.com/kompox/mcstack/adapters/drivers/aws"
	"github.com/kompox/mcstack/adapters/graph"
	"github.com/kompox/mcstack/adapters/store/inmem"
	"github.com/kompox/mcstack/adapters/store/rdb"
	"github.com/kompox/mcstack/config/mcstackcfg"
	"github.com/kompox/mcstack/domain/model"
	"github.com/kompox/mcstack/internal/logging"
	"github.com/kompox/mcstack/usecase/dns"
	"github.com/kompox/mcstack/usecase/stack"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	defaultConfigPath = "mcstack.yml"
	defaultDBURL      = "memory:"
)

// newDNSPorts is replaced in tests.
var newDNSPorts = func(region string) (model.InstancePort, model.DNSPort, error) {
	d, err := aws.New(region)
	if err != nil {
		return nil, nil, err
	}
	return d, d, nil
}

func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func flagString(cmd *cobra.Command, name, def string) string {
	if f := findFlag(cmd, name); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return def
}

// buildStackRepos selects the build repository based on db-url.
func buildStackRepos(cmd *cobra.Command) (*stack.Repos, error) {
	dbURL := flagString(cmd, "db-url", defaultDBURL)
	switch {
	case strings.HasPrefix(dbURL, "memory:"):
		return &stack.Repos{Build: inmem.NewStore().Repositories().Build}, nil
	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate %s: %w", dbURL, err)
		}
		return &stack.Repos{Build: rdb.NewBuildRepository(db)}, nil
	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}

// buildStackUseCase creates the stack use case with repositories and the graph port.
func buildStackUseCase(cmd *cobra.Command) (*stack.UseCase, error) {
	repos, err := buildStackRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &stack.UseCase{Repos: repos, GraphPort: graph.NewPort()}, nil
}

// buildDNSUseCase creates the DNS use case backed by EC2 and Route 53.
func buildDNSUseCase(region string) (*dns.UseCase, error) {
	instances, records, err := newDNSPorts(region)
	if err != nil {
		return nil, err
	}
	return &dns.UseCase{InstancePort: instances, DNSPort: records}, nil
}

// loadStack reads, validates and converts the configuration file.
// Warnings are logged and never fail the command.
func loadStack(cmd *cobra.Command) (*model.Stack, error) {
	ctx := cmd.Context()
	path := flagString(cmd, "config", defaultConfigPath)
	cfg, err := mcstackcfg.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range cfg.Warnings() {
		logging.FromContext(ctx).Warn(ctx, w, "config", path)
	}
	return cfg.ToModel()
}
