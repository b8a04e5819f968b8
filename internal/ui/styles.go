package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // headings
	colorAccent     = lipgloss.Color("#FFD700") // ingress and exact aspects
	colorSuccess    = lipgloss.Color("#00E676") // harmonious aspects
	colorDanger     = lipgloss.Color("#FF5252") // errors and hard aspects
	colorMuted      = lipgloss.Color("#636363")
	colorMutedLight = lipgloss.Color("#8C8C8C")
	colorWhite      = lipgloss.Color("#EEEEEE")
	colorBlue       = lipgloss.Color("#5B8DEF") // conjunctions
)

// Report styles.
var (
	styleHeading = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleValue = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleIngress = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleNote = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Italic(true).
			PaddingLeft(4)
)

// Aspect styles, keyed by the nature of the angle.
var (
	styleHard     = lipgloss.NewStyle().Foreground(colorDanger)
	styleSoft     = lipgloss.NewStyle().Foreground(colorSuccess)
	styleFocus    = lipgloss.NewStyle().Foreground(colorBlue)
	styleExactTag = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
