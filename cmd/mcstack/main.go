package main

import (
	"context"
	"io"
	"os"

	"github.com/kompox/mcstack/internal/logging"
	"github.com/spf13/cobra"
)

// logSink holds the log output opened by the root pre-run. Cobra skips
// post-run hooks when a command fails, so the caller closes it.
type logSink struct {
	out *logging.Output
}

func (s *logSink) Close() error {
	if s.out == nil {
		return nil
	}
	err := s.out.Close()
	s.out = nil
	return err
}

func newRootCmd() (*cobra.Command, *logSink) {
	cmd := &cobra.Command{
		Use:     "mcstack",
		Short:   "Game server stack synthesizer",
		Long:    "mcstack validates a game server stack configuration and synthesizes its resource graph",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringP("config", "C", envOr("MCSTACK_CONFIG", defaultConfigPath), "Configuration file (.yml or .hcl) (env MCSTACK_CONFIG)")
	pf.String("db-url", envOr("MCSTACK_DB_URL", defaultDBURL), "Database URL (env MCSTACK_DB_URL) (memory: | sqlite:/path/to.db)")
	pf.String("log-format", "human", "Log format (human|text|json) (env MCSTACK_LOG_FORMAT)")
	pf.String("log-level", "info", "Log level (debug|info|warn|error) (env MCSTACK_LOG_LEVEL)")
	pf.String("log-output", "", "Log destination: file path, '-' for stderr, 'none' to discard")

	sink := &logSink{}
	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("MCSTACK_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		levelName, _ := c.Flags().GetString("log-level")
		if env := os.Getenv("MCSTACK_LOG_LEVEL"); env != "" {
			levelName = env
		}
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		spec, _ := c.Flags().GetString("log-output")
		output, err := logging.OpenOutput(spec)
		if err != nil {
			return err
		}
		sink.out = output
		w := output.Writer()
		if spec == "" || spec == "-" {
			w = c.ErrOrStderr()
		}
		l, err := logging.NewWithWriter(format, level, w)
		if err != nil {
			return err
		}
		c.SetContext(logging.WithLogger(c.Context(), l))
		return nil
	}
	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdValidate())
	cmd.AddCommand(newCmdSynth())
	cmd.AddCommand(newCmdEnv())
	cmd.AddCommand(newCmdCompose())
	cmd.AddCommand(newCmdBuilds())
	cmd.AddCommand(newCmdDNS())
	return cmd, sink
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// execute runs root, logs a failure with the logger of the command that ran,
// and closes the log output on every path.
func execute(ctx context.Context, root *cobra.Command, sink io.Closer) error {
	executed, err := root.ExecuteContextC(ctx)
	if err != nil {
		if executed != nil && executed.Context() != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
	}
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	return err
}

func main() {
	root, sink := newRootCmd()
	if err := execute(context.Background(), root, sink); err != nil {
		os.Exit(1)
	}
}
