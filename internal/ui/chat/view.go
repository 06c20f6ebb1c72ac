// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/draftly/draftly-tui/internal/session"
	"github.com/draftly/draftly-tui/internal/store"
	"github.com/draftly/draftly-tui/internal/util"
)

const (
	sidebarWidth = 26
	// Below this width the sidebar is dropped entirely.
	sidebarMinTermWidth = 80
)

// =============================================================================
// LAYOUT
// =============================================================================

// layout resizes the inner components after a terminal resize.
func (m *Model) layout() {
	mainWidth := m.width
	if m.showSidebar() {
		mainWidth -= sidebarWidth
	}

	// Three rows at the bottom: composer, status bar, and a spacer.
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.viewport.Width = mainWidth
	m.viewport.Height = contentHeight
	m.input.Width = mainWidth - 4
}

func (m *Model) showSidebar() bool {
	return !m.compact && m.width >= sidebarMinTermWidth
}

// refreshViewport redraws the transcript into the viewport and follows the
// newest message.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	main := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.renderComposer(),
		m.renderStatusBar(),
	)

	if !m.showSidebar() {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscript() string {
	views := m.transcript.Bubbles()
	if len(views) == 0 {
		return m.theme.Hint.Render("Enter a topic below to draft your first post.")
	}

	maxWidth := m.viewport.Width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	var b strings.Builder
	for i, view := range views {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderBubble(view, maxWidth))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderBubble(view BubbleView, maxWidth int) string {
	var style lipgloss.Style
	switch view.Kind {
	case BubbleUser:
		style = m.theme.UserBubble
	case BubbleError:
		style = m.theme.ErrorBubble
	default:
		style = m.theme.AssistantBubble
	}

	rendered := style.MaxWidth(maxWidth).Render(view.Content)
	if view.Kind == BubbleUser {
		// User messages sit on the right, like any messenger.
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, rendered)
	}
	return rendered
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	entries := m.transcript.Conversations()
	if len(entries) == 0 {
		b.WriteString(m.theme.Hint.Render("none yet"))
	}

	// The store carries the per-conversation metadata shown under each
	// topic line.
	metas := make(map[string]store.Meta, len(entries))
	for _, meta := range m.controller.Store().List() {
		metas[meta.ID] = meta
	}

	for i, entry := range entries {
		label := util.TruncateWidth(entry.Topic, sidebarWidth-4)
		if i == m.selectedConvo {
			b.WriteString(m.theme.SidebarSelected.Render("> " + label))
		} else {
			b.WriteString(m.theme.SidebarItem.Render("  " + label))
		}
		b.WriteString("\n")

		if meta, ok := metas[entry.ID]; ok {
			detail := strconv.Itoa(meta.MessageCount) + " · " + meta.Preview
			b.WriteString(m.theme.Hint.Render("  " + util.TruncateWidth(detail, sidebarWidth-4)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(m.viewport.Height + 2).
		Padding(0, 1).
		Render(b.String())
}

// =============================================================================
// COMPOSER AND STATUS BAR
// =============================================================================

func (m Model) renderComposer() string {
	if m.state == StateWaiting {
		return m.theme.Hint.Render(m.spinner.View() + " drafting...")
	}
	return m.input.View()
}

func (m Model) renderStatusBar() string {
	latency := m.transcript.Latency()
	var latencyPart string
	switch latency {
	case "":
		latencyPart = m.theme.Hint.Render("—")
	case session.LatencyError:
		latencyPart = m.theme.StatusError.Render(latency)
	default:
		latencyPart = m.theme.StatusLatency.Render(latency)
	}

	parts := []string{
		latencyPart,
		m.theme.StatusOption.Render("persona:" + m.Persona()),
		m.theme.StatusOption.Render("tone:" + m.Tone()),
	}
	if m.notice != "" {
		parts = append(parts, m.theme.StatusError.Render(m.notice))
	}
	parts = append(parts, m.theme.Hint.Render("C-n new · C-p persona · C-t tone · Esc skip · C-c quit"))

	bar := strings.Join(parts, "  ")
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	return m.theme.StatusBar.Width(width).Render(bar)
}
