// Package ui provides the visual styling for the textsmith TUI, with
// light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, identical in both modes.
var (
	Success     = lipgloss.Color("#8BC34A") // Lime Green
	Destructive = lipgloss.Color("#e53935") // Red
	Info        = lipgloss.Color("#2196F3") // Blue
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#f4f5f6"),
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#9aa3ad"),
		Border:     lipgloss.Color("#dce0e5"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#141d2b"),
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#8BC34A"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#5a6a80"),
		Border:     lipgloss.Color("#2a3850"),
		IsDark:     true,
	}
}

// DetectTheme picks a theme from the terminal background heuristic, with an
// explicit env override.
func DetectTheme() Theme {
	if os.Getenv("TEXTSMITH_DARK_MODE") == "1" {
		return DarkTheme()
	}

	// COLORFGBG is "foreground;background"; ANSI indexes 0-6 and 8 are the
	// common dark backgrounds.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	return LightTheme()
}

// Styles holds all the styled components the TUI renders with.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Prompt  lipgloss.Style
	Spinner lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Banners carry the transient status message.
	SuccessBanner lipgloss.Style
	ErrorBanner   lipgloss.Style

	// Pane borders, switched on focus.
	FocusedPane lipgloss.Style
	BlurredPane lipgloss.Style

	// Option groups.
	OptionSelected lipgloss.Style
	Option         lipgloss.Style
}

// DefaultStyles creates styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		SuccessBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(Success).
			Padding(0, 1).
			Bold(true),

		ErrorBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(Destructive).
			Padding(0, 1).
			Bold(true),

		FocusedPane: pane.BorderForeground(theme.Accent),
		BlurredPane: pane.BorderForeground(theme.Border),

		OptionSelected: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Underline(true),

		Option: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}
