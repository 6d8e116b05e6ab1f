package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"artes-cli/internal/model"
)

// Theme/palette helpers.
//
// The TUI must stay readable on both light and dark terminal backgrounds, so
// semantic colors use lipgloss.AdaptiveColor and "faint" styling is applied
// only on dark backgrounds (faint text on light terminals often becomes
// illegible).

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
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorAccent    lipgloss.TerminalColor = ac("27", "62") // blue
	colorError     lipgloss.TerminalColor = ac("160", "203")
	colorSuccess   lipgloss.TerminalColor = ac("28", "77")
	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "235")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	// Activity status colors, keyed to the backend's Spanish labels.
	colorStatusOnTrack   lipgloss.TerminalColor = ac("27", "75")  // blue
	colorStatusDone      lipgloss.TerminalColor = ac("28", "77")  // green
	colorStatusCancelled lipgloss.TerminalColor = ac("240", "243")

	// Deadline urgency colors.
	colorDueOverdue lipgloss.TerminalColor = ac("160", "203") // red
	colorDueToday   lipgloss.TerminalColor = ac("166", "214") // orange
	colorDueSoon    lipgloss.TerminalColor = ac("136", "179") // yellow
	colorDueOnTrack lipgloss.TerminalColor = ac("28", "77")   // green
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func statusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusDone:
		return lipgloss.NewStyle().Foreground(colorStatusDone)
	case model.StatusCancelled:
		return faintIfDark(lipgloss.NewStyle().Foreground(colorStatusCancelled))
	default:
		return lipgloss.NewStyle().Foreground(colorStatusOnTrack)
	}
}

func deadlineStyle(k model.DeadlineKind) lipgloss.Style {
	switch k {
	case model.DeadlineOverdue:
		return lipgloss.NewStyle().Foreground(colorDueOverdue).Bold(true)
	case model.DeadlineToday:
		return lipgloss.NewStyle().Foreground(colorDueToday).Bold(true)
	case model.DeadlineSoon:
		return lipgloss.NewStyle().Foreground(colorDueSoon)
	case model.DeadlineOnTrack:
		return lipgloss.NewStyle().Foreground(colorDueOnTrack)
	default:
		return styleMuted()
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI. termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE,
// which suits non-interactive output but can accidentally disable colors in
// a TUI; here we only honor NO_COLOR and otherwise follow the terminal.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection. Some
// terminals don't reliably report their background, which makes
// AdaptiveColor pick the wrong variant.
//
// Priority:
// 1) ARTES_TUI_THEME=light|dark|auto
// 2) ARTES_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic (format like "15;0" = fg;bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ARTES_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("ARTES_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}
}
