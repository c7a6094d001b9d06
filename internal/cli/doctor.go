package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aquaflow/aquaflow/internal/config"
	"github.com/aquaflow/aquaflow/internal/doctor"
	aferrors "github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/telemetry"
	"github.com/aquaflow/aquaflow/internal/ui"
)

var doctorJSON bool

// doctorCmd diagnoses config, API reachability and the terminal.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config, API and terminal problems",
	Long: `Run diagnostic checks and report what needs fixing.

Checks the config file, each telemetry API resource, the terminal's color
support and the log file. Exits non-zero if any check fails.

Examples:
  aquaflow doctor
  aquaflow doctor --api http://raspberrypi.local:5000
  aquaflow doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), configFlag, flagOverrides(), doctorJSON, cmd.OutOrStdout())
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand runs every check and prints the report.
func doctorCommand(ctx context.Context, configPath string, o overrides, asJSON bool, out io.Writer) error {
	results := doctor.RunAllParallel(ctx, collectChecks(configPath, o))

	var err error
	if asJSON {
		err = outputDoctorJSON(out, results)
	} else {
		outputDoctorText(out, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		counts := doctor.CountByStatus(results)
		return aferrors.New(aferrors.ErrConfig,
			fmt.Sprintf("%d check%s failed", counts[doctor.StatusFail], pluralSuffix(counts[doctor.StatusFail])),
			"Fix the items marked above and run 'aquaflow doctor' again")
	}
	return nil
}

// collectChecks builds the checks for the effective settings. An unreadable
// config falls back to defaults here; the config checks report the problem.
func collectChecks(configPath string, o overrides) []doctor.Check {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	o.apply(cfg)

	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(configPath)...)

	client, err := telemetry.New(cfg.API.BaseURL)
	if err != nil {
		checks = append(checks, &doctor.AddressCheck{BaseURL: cfg.API.BaseURL, Err: err})
	} else {
		checks = append(checks, &doctor.AddressCheck{BaseURL: client.BaseURL()})
		checks = append(checks, doctor.NewAPIChecks(client, doctor.DefaultProbeTimeout)...)
	}

	checks = append(checks, doctor.NewTerminalChecks()...)
	checks = append(checks, &doctor.LogFileCheck{Path: config.Expand(cfg.Log.File)})
	return checks
}

// outputDoctorJSON writes results grouped by category.
func outputDoctorJSON(out io.Writer, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(results)

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(doctor.Categories)),
	}
	for _, cat := range doctor.Categories {
		if len(grouped[cat]) == 0 {
			continue
		}
		output.Categories = append(output.Categories, CategoryOutput{
			Name:    cat,
			Results: grouped[cat],
		})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// doctorStyles colors the text report.
type doctorStyles struct {
	success lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
}

func newDoctorStyles() doctorStyles {
	return doctorStyles{
		success: lipgloss.NewStyle().Foreground(ui.ColorSuccess),
		err:     lipgloss.NewStyle().Foreground(ui.ColorError),
		warn:    lipgloss.NewStyle().Foreground(ui.ColorWarning),
		muted:   lipgloss.NewStyle().Foreground(ui.ColorMuted),
		header:  lipgloss.NewStyle().Bold(true),
	}
}

// outputDoctorText writes the human-readable report.
func outputDoctorText(out io.Writer, results []doctor.CheckResult) {
	st := newDoctorStyles()

	fmt.Fprintln(out)
	fmt.Fprintln(out, st.header.Render("AquaFlow Diagnostic Report"))
	fmt.Fprintln(out)

	grouped := doctor.GroupByCategory(results)
	for _, category := range doctor.Categories {
		if len(grouped[category]) == 0 {
			continue
		}
		fmt.Fprintln(out, st.header.Render(category))
		for _, r := range grouped[category] {
			renderCheckResult(out, r, st)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out)

	if doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", st.err.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", st.success.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	fmt.Fprintln(out)
}

// renderCheckResult renders a single check result.
func renderCheckResult(out io.Writer, result doctor.CheckResult, st doctorStyles) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol, style = ui.SymbolSuccess, st.success
	case doctor.StatusWarn:
		symbol, style = ui.SymbolPending, st.warn
	default:
		symbol, style = ui.SymbolFail, st.err
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", st.muted.Render(line))
		}
	}
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
