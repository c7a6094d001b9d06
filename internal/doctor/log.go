package doctor

import (
	"context"
	"os"
	"path/filepath"
)

// LogFileCheck verifies the log file can be opened for appending.
type LogFileCheck struct {
	Path string
}

func (c *LogFileCheck) Name() string     { return "log_file" }
func (c *LogFileCheck) Category() string { return CategoryLog }

func (c *LogFileCheck) Run(context.Context) CheckResult {
	if c.Path == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "Logging is disabled",
			Suggestion: "Set log.file or --log-file to keep fetch failures for later",
		}
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Cannot create log directory: " + err.Error(),
			Suggestion: "Point --log-file at a writable path",
		}
	}

	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Cannot open log file: " + err.Error(),
			Suggestion: "Point --log-file at a writable path",
		}
	}
	_ = f.Close()

	return CheckResult{Status: StatusPass, Message: "Writing to " + c.Path}
}
