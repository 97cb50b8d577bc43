// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette for terminal output. lipgloss drops colour on non-TTY writers, so
// piped output stays plain.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED") // purple
	ColorMuted     = lipgloss.Color("#6B7280") // gray
	ColorSuccess   = lipgloss.Color("#10B981") // green
	ColorError     = lipgloss.Color("#EF4444") // red
	ColorWarning   = lipgloss.Color("#F59E0B") // amber
	ColorHighlight = lipgloss.Color("#3B82F6") // blue
)

var (
	// TitleStyle renders the command name in long help.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	// SubtitleStyle renders help section headings.
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	// SuccessStyle marks downloaded archives and clean summaries.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	// ErrorStyle prefixes fatal errors.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	// WarningStyle marks summaries with pending updates.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	// CmdStyle highlights invocations and paths.
	CmdStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
)

// summaryStyle colours a batch summary by whether anything needs attention.
func summaryStyle(pending int) lipgloss.Style {
	if pending > 0 {
		return WarningStyle
	}
	return SuccessStyle
}
