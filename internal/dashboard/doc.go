// Package dashboard implements the live tank dashboard as a Bubble Tea program.
//
// The dashboard shows the latest reading, session statistics, and a chart of
// recent water levels. An external scheduler delivers a RefreshMsg every
// RefreshPeriod; each one starts three independent fetches whose results
// arrive as separate messages. All state changes happen in Update, so when
// cycles overlap the last message processed for a slot wins.
//
// Keyboard shortcuts:
//   - t: Toggle light/dark theme
//   - r: Force refresh
//   - ?: Show help
//   - q / Ctrl+C: Quit
package dashboard
