// Package ui provides terminal output helpers for ecsctl.
//
// All user-facing output (as opposed to structured logs) goes through
// this package so that success/warning/error rendering stays uniform
// across commands.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")

	// Styles
	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	checkMark = "✓"
	crossMark = "✗"
	warnMark  = "⚠"
)
