package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aquaflow/aquaflow/internal/ui"
)

// Global flags
var (
	configFlag      string
	apiFlag         string
	logFileFlag     string
	logLevelFlag    string
	metricsAddrFlag string
)

// rootCmd runs the live dashboard when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "aquaflow",
	Short: "Live terminal dashboard for the AquaFlow tank monitor",
	Long: `aquaflow polls the tank telemetry API every two seconds and shows the
current water level, pump state, session statistics and recent level history.

Examples:
  aquaflow
  aquaflow --api http://raspberrypi.local:5000
  aquaflow snapshot`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "config file (default: ./.aquaflow.yaml, then ~/.config/aquaflow/config.yaml)")
	pf.StringVar(&apiFlag, "api", "", "telemetry API base URL (e.g. http://localhost:5000)")
	pf.StringVar(&logFileFlag, "log-file", "", "write logs to this file")
	pf.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&metricsAddrFlag, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" && strings.HasPrefix(err.Error(), "unknown command") {
			fmt.Fprintf(os.Stderr, "%s '%s' is not an aquaflow command\n", ui.SymbolFail, name)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s\n", ui.SymbolFail, err)
		}
		fmt.Fprintln(os.Stderr, "  Run 'aquaflow --help' to see the available commands.")
		return 2
	}

	fmt.Fprintln(os.Stderr, err)
	return 1
}

// isUnknownCommandError reports cobra's unknown command and flag errors.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "aquaflow"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
