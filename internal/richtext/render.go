// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// TERMINAL RENDERER
// =============================================================================

// Styles holds the lipgloss styles the renderer applies to each node kind.
type Styles struct {
	Heading1 lipgloss.Style
	Heading2 lipgloss.Style
	Heading3 lipgloss.Style
	Bold     lipgloss.Style
	Bullet   string
}

// DefaultStyles returns renderer styles that only use text attributes, so
// rendering is deterministic regardless of the terminal color profile.
func DefaultStyles() Styles {
	return Styles{
		Heading1: lipgloss.NewStyle().Bold(true).Underline(true),
		Heading2: lipgloss.NewStyle().Bold(true),
		Heading3: lipgloss.NewStyle().Bold(true).Italic(true),
		Bold:     lipgloss.NewStyle().Bold(true),
		Bullet:   "• ",
	}
}

// Render converts a document into a string for the terminal transcript.
// Blocks are separated by a blank line; list items get a bullet prefix.
// Rendering a document twice always yields the same string.
func Render(doc *Document, styles Styles) string {
	if doc.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	for i, block := range doc.Blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		renderBlock(&sb, block, styles)
	}
	return sb.String()
}

// renderBlock writes one block node.
func renderBlock(sb *strings.Builder, n *Node, styles Styles) {
	switch n.Kind {
	case KindHeading:
		sb.WriteString(headingStyle(n.Level, styles).Render(n.Text))
	case KindParagraph:
		renderInline(sb, n.Children, styles)
	case KindList:
		for i, item := range n.Children {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(styles.Bullet)
			renderInline(sb, item.Children, styles)
		}
	}
}

// renderInline writes a span sequence.
func renderInline(sb *strings.Builder, spans []*Node, styles Styles) {
	for _, span := range spans {
		switch span.Kind {
		case KindText:
			sb.WriteString(span.Text)
		case KindBold:
			sb.WriteString(styles.Bold.Render(span.Text))
		case KindLineBreak:
			sb.WriteByte('\n')
		}
	}
}

// headingStyle picks the style for a heading level.
func headingStyle(level int, styles Styles) lipgloss.Style {
	switch level {
	case 1:
		return styles.Heading1
	case 2:
		return styles.Heading2
	default:
		return styles.Heading3
	}
}
