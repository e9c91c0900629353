package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching existing fatih/color usage
var (
	// ColorGreen for cached chapters and success indicators
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for verse numbers and metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for section headings and highlights
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
)

// Reusable styles
var (
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	StyleCached = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleVerseNum is for verse numbers in chapter text
	StyleVerseNum = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleSection is for section headings inside a chapter
	StyleSection = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)
)
