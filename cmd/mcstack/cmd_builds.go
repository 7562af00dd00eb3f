package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kompox/mcstack/usecase/stack"
	"github.com/spf13/cobra"
)

func newCmdBuilds() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "builds",
		Short:              "Manage saved builds",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdBuildsList(), newCmdBuildsGet(), newCmdBuildsDelete())
	return cmd
}

func newCmdBuildsList() *cobra.Command {
	var stackName string
	cmd := &cobra.Command{
		Use:                "list",
		Short:              "List saved builds",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildStackUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			out, err := uc.ListBuilds(ctx, &stack.ListBuildsInput{StackName: stackName})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, b := range out.Builds {
				summary := struct {
					ID        string    `json:"id"`
					StackName string    `json:"stackName"`
					Resources int       `json:"resources"`
					CreatedAt time.Time `json:"createdAt"`
				}{ID: b.ID, StackName: b.StackName, CreatedAt: b.CreatedAt}
				if b.Graph != nil {
					summary.Resources = len(b.Graph.Resources)
				}
				if err := enc.Encode(summary); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stackName, "stack", "", "Only list builds of this stack")
	return cmd
}

func newCmdBuildsGet() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:                "get <id>",
		Short:              "Get a saved build",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildStackUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			out, err := uc.GetBuild(ctx, &stack.GetBuildInput{BuildID: args[0]})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, out.Build)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", outputJSON, "Output format (json|yaml)")
	return cmd
}

func newCmdBuildsDelete() *cobra.Command {
	return &cobra.Command{
		Use:                "delete <id>",
		Short:              "Delete a saved build",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildStackUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "build.delete", args[0])
			defer func() { cleanup(err) }()
			_, err = uc.DeleteBuild(ctx, &stack.DeleteBuildInput{BuildID: args[0]})
			return err
		},
	}
}
