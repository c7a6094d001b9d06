package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/aquaflow/aquaflow/internal/config"
	aferrors "github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/telemetry"
	"github.com/aquaflow/aquaflow/internal/ui"
)

// probeTimeout bounds the reachability check init runs before saving.
const probeTimeout = 5 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write into; defaults to "."
	API            string // Pre-specified API base URL
	Theme          string // Pre-specified theme
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
	Out            io.Writer
}

// Init creates a new .aquaflow.yaml configuration file.
func Init(ctx context.Context, opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return aferrors.New(aferrors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return aferrors.WrapWithCode(err, aferrors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.API != "" {
		cfg.API.BaseURL = opts.API
	}
	if opts.Theme != "" {
		cfg.Theme = strings.ToLower(opts.Theme)
	}

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	probeAPI(ctx, out, cfg.API.BaseURL)

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  aquaflow           - Open the live dashboard")
	fmt.Fprintln(out, "  aquaflow snapshot  - Print one reading")
	return nil
}

// promptConfig asks for the API address and theme, starting from cfg.
func promptConfig(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Telemetry API").
				Description("Base URL of the tank monitor's web server").
				Placeholder(config.DefaultBaseURL).
				Value(&cfg.API.BaseURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("API address is required")
					}
					probe := *cfg
					probe.API.BaseURL = s
					return config.Validate(&probe)
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Description("auto follows the terminal background").
				Options(
					huh.NewOption("auto", config.ThemeAuto),
					huh.NewOption("light", config.ThemeLight),
					huh.NewOption("dark", config.ThemeDark),
				).
				Value(&cfg.Theme),
		),
	)

	if err := form.Run(); err != nil {
		return aferrors.WrapWithCode(err, aferrors.ErrConfig,
			"Failed to get user input",
			"Pass --api and --theme and run without a terminal, or set CI=1")
	}
	return nil
}

// probeAPI reports whether the API answers. An unreachable API does not stop
// init.
func probeAPI(ctx context.Context, out io.Writer, baseURL string) {
	client, err := telemetry.New(baseURL)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := client.GetStats(ctx); err != nil {
		fmt.Fprintf(out, "%s Could not reach %s: %s\n", ui.SymbolPending, client.BaseURL(), aferrors.Summarize(err))
		fmt.Fprintln(out, "  Saving anyway; the dashboard will keep retrying.")
		return
	}
	fmt.Fprintf(out, "%s Reached %s\n", ui.SymbolSuccess, client.BaseURL())
}

// nonInteractive reports whether init should skip prompts.
func nonInteractive() bool {
	return os.Getenv("CI") != "" || os.Getenv(nonInteractiveEnv) != "" || !isTerminal(os.Stdin)
}

// nonInteractiveEnv disables init prompts when set.
const nonInteractiveEnv = "AQUAFLOW_NON_INTERACTIVE"
