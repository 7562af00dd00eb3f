package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kompox/mcstack/adapters/compose"
	"github.com/kompox/mcstack/internal/logging"
	"github.com/kompox/mcstack/usecase/stack"
	"github.com/spf13/cobra"
)

func newCmdCompose() *cobra.Command {
	var out string
	var secretFile string
	cmd := &cobra.Command{
		Use:                "compose",
		Short:              "Render the workload as a compose project for local runs",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := loadStack(cmd)
			if err != nil {
				return err
			}
			uc, err := buildStackUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "stack.compose", s.Name)
			defer func() { cleanup(err) }()

			envOut, err := uc.Environment(ctx, &stack.EnvironmentInput{Stack: s})
			if err != nil {
				return err
			}
			rendered, err := compose.Render(ctx, &compose.Input{
				ProjectName:          s.Name,
				Image:                s.Image(),
				MemoryReservationMiB: s.MemoryReservation(),
				Environment:          envOut.Environment,
				RCONSecretFile:       secretFile,
				WorkingDir:           workingDir(out),
			})
			if err != nil {
				return fmt.Errorf("render compose: %w", err)
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(rendered.Content)
				return err
			}
			if err := os.WriteFile(out, rendered.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			logging.FromContext(ctx).Info(ctx, "compose file written", "path", out, "services", len(rendered.Project.Services))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file ('-' or empty for stdout)")
	cmd.Flags().StringVar(&secretFile, "rcon-secret-file", compose.RCONSecretFile, "File holding the RCON password")
	return cmd
}

func workingDir(out string) string {
	if out == "" || out == "-" {
		return "."
	}
	return filepath.Dir(out)
}
