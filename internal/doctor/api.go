package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/telemetry"
)

// DefaultProbeTimeout bounds each endpoint check.
const DefaultProbeTimeout = 5 * time.Second

// Fetcher is the part of the telemetry client the API checks use.
type Fetcher interface {
	BaseURL() string
	GetCurrentReading(ctx context.Context) (telemetry.CurrentReading, error)
	GetStats(ctx context.Context) (telemetry.Stats, error)
	GetHistory(ctx context.Context) (telemetry.HistorySeries, error)
}

// EndpointCheck fetches one resource and describes what came back.
type EndpointCheck struct {
	Resource string
	Timeout  time.Duration
	// probe returns a short description of the payload, a warning when the
	// payload is usable but incomplete, or an error.
	probe func(ctx context.Context) (desc, warning string, err error)
	base  string
}

func (c *EndpointCheck) Name() string     { return "api_" + strings.ReplaceAll(c.Resource, "-", "_") }
func (c *EndpointCheck) Category() string { return CategoryAPI }

func (c *EndpointCheck) Run(ctx context.Context) CheckResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	desc, warning, err := c.probe(ctx)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		suggestion := "Check that the tank monitor is running at " + c.base
		if errors.IsCode(err, errors.ErrParse) {
			suggestion = "The server answered with something other than the expected JSON; check its version"
		}
		return CheckResult{
			Status:     StatusFail,
			Message:    c.Resource + ": " + errors.Summarize(err),
			Suggestion: suggestion,
		}
	}

	if warning != "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s: %s (%s)", c.Resource, warning, elapsed),
			Suggestion: "The dashboard keeps the previous value for missing fields",
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s (%s)", c.Resource, desc, elapsed),
	}
}

// NewAPIChecks creates one check per dashboard resource.
func NewAPIChecks(f Fetcher, timeout time.Duration) []Check {
	base := f.BaseURL()
	return []Check{
		&EndpointCheck{Resource: telemetry.ResourceCurrentData, Timeout: timeout, base: base, probe: func(ctx context.Context) (string, string, error) {
			r, err := f.GetCurrentReading(ctx)
			if err != nil {
				return "", "", err
			}
			if missing := r.MissingFields(); len(missing) > 0 {
				return "", "missing " + strings.Join(missing, ", "), nil
			}
			return fmt.Sprintf("level %v%%, pump %s", *r.WaterLevelPercent, *r.PumpStatus), "", nil
		}},
		&EndpointCheck{Resource: telemetry.ResourceStats, Timeout: timeout, base: base, probe: func(ctx context.Context) (string, string, error) {
			st, err := f.GetStats(ctx)
			if err != nil {
				return "", "", err
			}
			if st.TotalRecords == nil {
				return "", "no samples recorded yet", nil
			}
			return fmt.Sprintf("%v records", *st.TotalRecords), "", nil
		}},
		&EndpointCheck{Resource: telemetry.ResourceHistory, Timeout: timeout, base: base, probe: func(ctx context.Context) (string, string, error) {
			h, err := f.GetHistory(ctx)
			if err != nil {
				return "", "", err
			}
			if h.Levels == nil {
				return "", "response has no levels", nil
			}
			if len(h.Levels) != len(h.Timestamps) {
				return "", fmt.Sprintf("%d timestamps for %d levels", len(h.Timestamps), len(h.Levels)), nil
			}
			return fmt.Sprintf("%d point%s", len(h.Levels), pluralize(len(h.Levels))), "", nil
		}},
	}
}

// AddressCheck reports an API base URL the client could not be built from.
type AddressCheck struct {
	BaseURL string
	Err     error
}

func (c *AddressCheck) Name() string     { return "api_address" }
func (c *AddressCheck) Category() string { return CategoryAPI }

func (c *AddressCheck) Run(context.Context) CheckResult {
	if c.Err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.Summarize(c.Err),
			Suggestion: "Set api.base_url or --api to something like http://localhost:5000",
		}
	}
	return CheckResult{Status: StatusPass, Message: "API address: " + c.BaseURL}
}
