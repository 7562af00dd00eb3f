package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kompox/mcstack/usecase/stack"
	"github.com/spf13/cobra"
)

func newCmdValidate() *cobra.Command {
	return &cobra.Command{
		Use:                "validate",
		Short:              "Validate the stack configuration",
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
			ctx, cleanup := withCmdRunLogger(ctx, "stack.validate", s.Name)
			defer func() { cleanup(err) }()

			out, err := uc.Validate(ctx, &stack.ValidateInput{Stack: s})
			if err != nil {
				return err
			}
			source := "provisioned"
			if out.Adopted {
				source = "adopted"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stack=%s cluster=%s", s.Name, source)
			if out.PluginsHash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " plugins=%s", out.PluginsHash)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newCmdSynth() *cobra.Command {
	var format string
	var save bool
	cmd := &cobra.Command{
		Use:                "synth",
		Short:              "Synthesize the resource graph of the stack",
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
			ctx, cleanup := withCmdRunLogger(ctx, "stack.synth", s.Name)
			defer func() { cleanup(err) }()

			out, err := uc.Synth(ctx, &stack.SynthInput{Stack: s, Save: save})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, out)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", outputJSON, "Output format (json|yaml)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the result as a build")
	return cmd
}

func newCmdEnv() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:                "env",
		Short:              "Print the derived workload environment",
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
			ctx, cleanup := withCmdRunLogger(ctx, "stack.env", s.Name)
			defer func() { cleanup(err) }()

			out, err := uc.Environment(ctx, &stack.EnvironmentInput{Stack: s})
			if err != nil {
				return err
			}
			if format != "" {
				return writeOutput(cmd.OutOrStdout(), format, out.Environment)
			}
			env := out.Environment
			for _, k := range env.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, env.Environment[k])
			}
			for _, k := range env.SecretKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=<secret:%s>\n", k, env.Secrets[k].ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "", "Output format (json|yaml), KEY=VALUE lines when empty")
	return cmd
}
