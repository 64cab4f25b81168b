package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"doin/internal/layout"
)

// Color palette
var (
	black   = lipgloss.Color("0")
	gray    = lipgloss.Color("7")
	green   = lipgloss.Color("2")
	cyan    = lipgloss.Color("6")
	pink    = lipgloss.Color("205")
	muted   = lipgloss.Color("241")
	errorFg = lipgloss.Color("196")
)

var (
	plainStyle  = lipgloss.NewStyle()
	borderStyle = lipgloss.NewStyle().Foreground(muted)

	frameTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	paneTitleStyle  = lipgloss.NewStyle().Italic(true).Foreground(green)

	selectedStyle = lipgloss.NewStyle().Foreground(black).Background(gray)

	legendKeyStyle   = lipgloss.NewStyle().Foreground(black).Background(gray)
	legendLabelStyle = lipgloss.NewStyle().Foreground(gray).Background(black)

	modalBorderStyle = lipgloss.NewStyle().Foreground(pink)
	modalTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(pink)

	labelStyle       = lipgloss.NewStyle().Foreground(cyan)
	inputStyle       = lipgloss.NewStyle()
	placeholderStyle = lipgloss.NewStyle().Foreground(muted)
	cursorStyle      = lipgloss.NewStyle().Reverse(true)
	errorStyle       = lipgloss.NewStyle().Foreground(errorFg).Bold(true)
	promptStyle      = lipgloss.NewStyle().Bold(true)
	hintStyle        = lipgloss.NewStyle().Foreground(muted)
)

func styleFor(s layout.Style) lipgloss.Style {
	switch s {
	case layout.StyleBorder:
		return borderStyle
	case layout.StyleFrameTitle:
		return frameTitleStyle
	case layout.StylePaneTitle:
		return paneTitleStyle
	case layout.StyleSelected:
		return selectedStyle
	case layout.StyleLegendKey:
		return legendKeyStyle
	case layout.StyleLegendLabel:
		return legendLabelStyle
	case layout.StyleModalBorder:
		return modalBorderStyle
	case layout.StyleModalTitle:
		return modalTitleStyle
	case layout.StyleLabel:
		return labelStyle
	case layout.StyleInput:
		return inputStyle
	case layout.StylePlaceholder:
		return placeholderStyle
	case layout.StyleCursor:
		return cursorStyle
	case layout.StyleError:
		return errorStyle
	case layout.StylePrompt:
		return promptStyle
	case layout.StyleHint:
		return hintStyle
	default:
		return plainStyle
	}
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts COLORTERM
// over termenv's probe, which under-reports inside tmux.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if profile != termenv.Ascii && (strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")) {
		profile = termenv.TrueColor
	}
	lipgloss.SetColorProfile(profile)
}
