package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kompox/mcstack/internal/logging"
	"github.com/kompox/mcstack/usecase/dns"
	"github.com/spf13/cobra"
)

func newCmdDNS() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "dns",
		Short:              "Keep the custom domain record pointing at the server host",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdDNSUpdate())
	return cmd
}

func newCmdDNSUpdate() *cobra.Command {
	var (
		eventPath    string
		hostedZoneID string
		domainName   string
		region       string
		ttl          uint32
		dryRun       bool
	)
	cmd := &cobra.Command{
		Use:                "update",
		Short:              "Upsert the A record from an instance launch event",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			event, err := readEvent(cmd, eventPath)
			if err != nil {
				return err
			}
			uc, err := buildDNSUseCase(region)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "dns.update", domainName)
			defer func() { cleanup(err) }()

			out, err := uc.Update(ctx, &dns.UpdateInput{
				Event:        event,
				HostedZoneID: hostedZoneID,
				DomainName:   domainName,
				TTL:          ttl,
				DryRun:       dryRun,
			})
			if err != nil {
				return err
			}
			r := out.Result
			logger := logging.FromContext(ctx)
			switch r.Action {
			case "planned":
				logger.Info(ctx, "would apply DNS record", "fqdn", r.FQDN, "type", r.Type, "message", r.Message)
			default:
				logger.Info(ctx, "applied DNS record", "fqdn", r.FQDN, "type", r.Type, "message", r.Message)
			}
			return writeOutput(cmd.OutOrStdout(), outputJSON, out)
		},
	}
	cmd.Flags().StringVar(&eventPath, "event", "-", "Launch event JSON file ('-' for stdin)")
	cmd.Flags().StringVar(&hostedZoneID, "hosted-zone-id", os.Getenv("HOSTED_ZONE_ID"), "Hosted zone ID (env HOSTED_ZONE_ID)")
	cmd.Flags().StringVar(&domainName, "domain-name", os.Getenv("DOMAIN_NAME"), "Domain name (env DOMAIN_NAME)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from the shared AWS config)")
	cmd.Flags().Uint32Var(&ttl, "ttl", dns.DefaultTTL, "Record TTL in seconds")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be changed without applying")
	return cmd
}

func readEvent(cmd *cobra.Command, path string) ([]byte, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read event: %w", err)
	}
	return b, nil
}
