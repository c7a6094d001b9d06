// Package ui holds the small pieces of styled output shared by the one-shot
// commands: status symbols, ANSI colors and a line spinner.
//
// The live dashboard has its own themed styles in package dashboard.
package ui
