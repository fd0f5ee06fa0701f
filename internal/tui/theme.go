package tui

import (
	"os"
	"strconv"
	"strings"

	"ticketdesk/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Everything goes through AdaptiveColor so the TUI stays readable on light
// and dark backgrounds; faint text is only used on dark ones.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted       lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg   lipgloss.TerminalColor = ac("235", "252")
	colorControlBg   lipgloss.TerminalColor = ac("252", "235")
	colorSelectedBg  lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg  lipgloss.TerminalColor = ac("235", "255")
	colorCardBorder  lipgloss.TerminalColor = ac("250", "243")
	colorAccent      lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg    lipgloss.TerminalColor = ac("255", "235")
	colorError       lipgloss.TerminalColor = ac("160", "203")
	colorModalBorder lipgloss.TerminalColor = ac("232", "255")

	colorStatusOpen       lipgloss.TerminalColor = ac("27", "75")
	colorStatusInProgress lipgloss.TerminalColor = ac("130", "214")
	colorStatusResolved   lipgloss.TerminalColor = ac("28", "114")
	colorStatusClosed     lipgloss.TerminalColor = ac("243", "245")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError).Bold(true)
}

func statusColor(s model.Status) lipgloss.TerminalColor {
	switch s {
	case model.StatusOpen:
		return colorStatusOpen
	case model.StatusInProgress:
		return colorStatusInProgress
	case model.StatusResolved:
		return colorStatusResolved
	default:
		return colorStatusClosed
	}
}

func styleStatus(s model.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColor(s))
}

// applyColorProfilePreference picks the Lip Gloss color profile for the TUI. Only
// NO_COLOR is honored; CLICOLOR handling in termenv.EnvColorProfile is meant for
// piped output and would wrongly strip colors here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when the detector under-reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// themePreference reports the configured background: "light", "dark", or "" to
// leave detection to Lip Gloss.
//
// Priority: TICKETDESK_TUI_THEME=light|dark|auto, then the COLORFGBG heuristic
// ("fg;bg", bg < 7 is dark).
func themePreference() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TICKETDESK_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg < 7 {
				return "dark"
			}
			return "light"
		}
	}
	return ""
}

func applyThemePreference() {
	switch themePreference() {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}
