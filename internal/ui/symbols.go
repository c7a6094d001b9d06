package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Resource fetched
	SymbolFail     = "✗" // Resource failed
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In flight
)
