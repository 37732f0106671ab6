package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines a color scheme for UI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color, used for values and prompts.
	Primary string
	// Secondary is used for labels and less prominent elements.
	Secondary string
	// Success marks passed checks.
	Success string
	// Warning marks timings and non-fatal notices.
	Warning string
	// Error marks failures and mismatches.
	Error string
	// Info is used for informational messages.
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex

	// isTerminal reports whether stdout is attached to a terminal.
	// Tests replace it.
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// GetCurrentTheme returns the currently active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme, mostly to restore state in tests.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name ("dark", "light" or "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects the theme at startup. Colors are disabled when noColor
// is set, when NO_COLOR is present in the environment (https://no-color.org/)
// or when stdout is not a terminal.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	if !isTerminal() {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// Styles groups the lipgloss styles used for framed output such as the REPL
// banner and the self-check summary header.
type Styles struct {
	Banner lipgloss.Style
	Header lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Dim    lipgloss.Style
}

// CurrentStyles builds Styles matching the active theme. With colors
// disabled the styles keep their layout but carry no color.
func CurrentStyles() Styles {
	if GetCurrentTheme().Name == "none" {
		plain := lipgloss.NewStyle()
		return Styles{
			Banner: plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			Header: plain,
			Pass:   plain,
			Fail:   plain,
			Dim:    plain,
		}
	}
	accent := lipgloss.Color("#4488FF")
	return Styles{
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(accent).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Pass:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4444")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}
