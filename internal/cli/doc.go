// Package cli implements the aquaflow command-line interface.
//
// Each cobra command is a thin shell over a function that takes resolved
// settings and does the work, so the work can be tested without cobra.
//
// # Command Structure
//
//	aquaflow             - Same as "aquaflow watch"
//	aquaflow watch       - Live tank dashboard (needs a terminal)
//	aquaflow snapshot    - One refresh cycle printed as plain text
//	aquaflow init        - Create .aquaflow.yaml
//	aquaflow doctor      - Diagnose config, API and terminal problems
//	aquaflow version     - Print build information
//	aquaflow completion  - Generate shell completion scripts
//
// # Settings
//
// Settings resolve in this order, later sources winning: built-in defaults,
// the config file (--config, ./.aquaflow.yaml, ~/.config/aquaflow/config.yaml),
// AQUAFLOW_* environment variables, then the global flags --api, --log-file,
// --log-level and --metrics-addr.
package cli
