package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aquaflow/aquaflow/internal/config"
	"github.com/aquaflow/aquaflow/internal/dashboard"
	aferrors "github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/scheduler"
	"github.com/aquaflow/aquaflow/internal/theme"
)

// isTerminal is swapped in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadSettings(configFlag, flagOverrides())
	if err != nil {
		return err
	}
	return watchCommand(cmd.Context(), cfg)
}

// watchCommand runs the live dashboard until the user quits or ctx ends.
func watchCommand(ctx context.Context, cfg *config.Config) error {
	if !isTerminal(os.Stdout) {
		return aferrors.New(aferrors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'aquaflow snapshot' for plain-text output")
	}

	th, err := theme.Parse(cfg.Theme)
	if err != nil {
		return aferrors.WrapWithCode(err, aferrors.ErrConfig,
			"Invalid theme",
			"Use one of: light, dark, auto")
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.serveMetrics(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := dashboard.NewModel(a.client,
		dashboard.WithLogger(a.log),
		dashboard.WithTheme(th),
		dashboard.WithContext(ctx),
	)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the program reads the message, and returns at once
	// after the program has exited.
	sched := scheduler.New(dashboard.RefreshPeriod, func() {
		p.Send(dashboard.RefreshMsg{})
	}, scheduler.WithLogger(a.log))

	sched.Start()
	_, err = p.Run()
	sched.Stop()

	if err != nil && ctx.Err() != nil {
		// Interrupted by a signal; treat as a normal exit.
		return nil
	}
	if err != nil {
		return aferrors.WrapWithCode(err, aferrors.ErrRender,
			"The dashboard stopped unexpectedly",
			"Check the log file for details")
	}
	return nil
}
