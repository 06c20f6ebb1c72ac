// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/draftly/draftly-tui/internal/richtext"
)

// =============================================================================
// THEME
// =============================================================================

// Theme bundles the lipgloss styles for every part of the chat screen.
type Theme struct {
	// Message bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style

	// Sidebar
	SidebarTitle    lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarSelected lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusLatency lipgloss.Style
	StatusError   lipgloss.Style
	StatusOption  lipgloss.Style

	// Composer
	ComposerPrompt lipgloss.Style
	Hint           lipgloss.Style
}

// DefaultTheme returns the standard draftly theme.
func DefaultTheme() Theme {
	return Theme{
		UserBubble: lipgloss.NewStyle().
			Foreground(UserBubbleFg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(UserBubbleBorder).
			Padding(0, 1),

		AssistantBubble: lipgloss.NewStyle().
			Foreground(AssistantBubbleFg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AssistantBubbleBorder).
			Padding(0, 1),

		ErrorBubble: lipgloss.NewStyle().
			Foreground(ErrorBubbleFg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorBubbleBorder).
			Padding(0, 1),

		SidebarTitle: lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true),

		SidebarItem: lipgloss.NewStyle().
			Foreground(TextSecondary),

		SidebarSelected: lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(SelectionBg).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(SurfaceDim),

		StatusLatency: lipgloss.NewStyle().
			Foreground(Emerald),

		StatusError: lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true),

		StatusOption: lipgloss.NewStyle().
			Foreground(Cyan),

		ComposerPrompt: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),

		Hint: lipgloss.NewStyle().
			Foreground(TextMuted),
	}
}

// RichtextStyles returns the formatted-draft styles matching the theme.
func (t Theme) RichtextStyles() richtext.Styles {
	return richtext.Styles{
		Heading1: lipgloss.NewStyle().Foreground(Purple).Bold(true).Underline(true),
		Heading2: lipgloss.NewStyle().Foreground(Purple).Bold(true),
		Heading3: lipgloss.NewStyle().Foreground(Purple).Italic(true),
		Bold:     lipgloss.NewStyle().Bold(true),
		Bullet:   "• ",
	}
}
