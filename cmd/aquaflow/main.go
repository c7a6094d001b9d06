// Command aquaflow is the terminal dashboard for the AquaFlow tank monitor.
package main

import (
	"os"

	"github.com/aquaflow/aquaflow/internal/cli"
)

// Set via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01" ./cmd/aquaflow
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	os.Exit(cli.Execute())
}
