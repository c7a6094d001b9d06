package cli

import (
	"github.com/spf13/cobra"

	aferrors "github.com/aquaflow/aquaflow/internal/errors"
)

// Command-specific flags
var (
	initForce bool
	initTheme string
)

// watchCmd is the live dashboard, also run by bare "aquaflow".
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live tank dashboard",
	Long: `Open the live tank dashboard.

The dashboard refreshes every two seconds. Each refresh reads the current
reading, the session statistics and the level history independently; a
resource that fails keeps showing its last value.

Keys: t toggles the theme, r refreshes now, ? shows help, q quits.

Examples:
  aquaflow watch
  aquaflow watch --api http://raspberrypi.local:5000
  aquaflow watch --log-file /tmp/aquaflow.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

// snapshotCmd prints one refresh cycle for scripts and pipes.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one reading as plain text",
	Long: `Run a single refresh cycle and print the result as plain text.

Resources that fail are reported on stderr. The command fails only when all
three resources fail.

Examples:
  aquaflow snapshot
  aquaflow snapshot --api 192.168.1.40:5000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSnapshot(cmd)
	},
}

// initCmd writes a project config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .aquaflow.yaml in the current directory",
	Long: `Create an .aquaflow.yaml config file in the current directory.

Prompts for the API address and theme when run in a terminal. Without a
terminal (or with CI set) the flags and defaults are used as-is.

Examples:
  aquaflow init
  aquaflow init --api http://raspberrypi.local:5000 --theme dark
  aquaflow init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.Context(), InitOptions{
			API:            apiFlag,
			Theme:          initTheme,
			Overwrite:      initForce,
			NonInteractive: nonInteractive(),
			Out:            cmd.OutOrStdout(),
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for aquaflow.

Examples:
  # Bash
  aquaflow completion bash > /etc/bash_completion.d/aquaflow

  # Zsh
  aquaflow completion zsh > "${fpath[1]}/_aquaflow"

  # Fish
  aquaflow completion fish > ~/.config/fish/completions/aquaflow.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return aferrors.New(aferrors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config without asking")
	initCmd.Flags().StringVar(&initTheme, "theme", "", "theme to save: light, dark or auto")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
