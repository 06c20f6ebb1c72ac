// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/draftly/draftly-tui/internal/config"
	"github.com/draftly/draftly-tui/internal/gateway"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one Bubble Tea message and returns the next chat state.
// The root program model delegates here.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case GenerateDoneMsg:
		return m.handleGenerateDone(msg)

	case RevealTickMsg:
		return m.handleRevealTick()

	case ConversationSwitchedMsg:
		if msg.Err != nil {
			m.notice = "switch failed: " + msg.Err.Error()
		} else {
			m.notice = ""
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == StateWaiting {
			// The round trip writes the user bubble and the placeholder
			// into the transcript off the UI goroutine; pick them up on
			// each spinner frame.
			m.refreshViewport()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Cancel):
		// Esc skips the rest of the typing animation. The full draft is
		// already stored, so nothing is lost.
		if m.activeReveal != nil {
			m.activeReveal.Cancel()
			m.activeReveal = nil
			m.state = StateReady
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.NewSession):
		if m.state != StateReady {
			return m, nil
		}
		m.controller.NewSession()
		m.transcript.Clear()
		m.selectedConvo = 0
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.NextConvo):
		return m.switchConvo(1)

	case key.Matches(msg, m.keyMap.PrevConvo):
		return m.switchConvo(-1)

	case key.Matches(msg, m.keyMap.CyclePersona):
		if m.state == StateReady {
			m.personaIdx = (m.personaIdx + 1) % len(config.Personas)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.CycleTone):
		if m.state == StateReady {
			m.toneIdx = (m.toneIdx + 1) % len(config.Tones)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

func (m Model) handleSubmit() (Model, tea.Cmd) {
	// One round trip at a time.
	if m.state != StateReady {
		return m, nil
	}

	topic := strings.TrimSpace(m.input.Value())
	if topic == "" {
		return m, nil
	}

	m.input.Reset()
	m.state = StateWaiting
	return m, tea.Batch(m.submitCmd(topic), m.spinner.Tick)
}

// submitCmd runs the round trip off the UI goroutine. The controller writes
// the user bubble and the outcome into the shared transcript as it goes.
func (m Model) submitCmd(topic string) tea.Cmd {
	ctrl := m.controller
	timeout := m.timeout
	opts := gateway.Options{Persona: m.Persona(), Tone: m.Tone()}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rev, err := ctrl.Submit(ctx, topic, opts)
		return GenerateDoneMsg{Reveal: rev, Err: err}
	}
}

func (m Model) handleGenerateDone(msg GenerateDoneMsg) (Model, tea.Cmd) {
	if msg.Err != nil || msg.Reveal == nil {
		// The error bubble and "error" latency label are already in the
		// transcript; just redraw.
		m.state = StateReady
		m.refreshViewport()
		return m, nil
	}

	m.state = StateRevealing
	m.activeReveal = msg.Reveal
	m.refreshViewport()
	return m, m.revealTickCmd()
}

// =============================================================================
// REVEAL ANIMATION
// =============================================================================

func (m Model) revealTickCmd() tea.Cmd {
	return tea.Tick(m.activeReveal.Interval(), func(t time.Time) tea.Msg {
		return RevealTickMsg{Time: t}
	})
}

func (m Model) handleRevealTick() (Model, tea.Cmd) {
	// A late tick after Esc or completion.
	if m.activeReveal == nil {
		return m, nil
	}

	finished := m.activeReveal.Tick()
	m.refreshViewport()

	if finished {
		m.activeReveal = nil
		m.state = StateReady
		return m, nil
	}
	return m, m.revealTickCmd()
}

// =============================================================================
// CONVERSATION SWITCHING
// =============================================================================

func (m Model) switchConvo(delta int) (Model, tea.Cmd) {
	if m.state != StateReady {
		return m, nil
	}

	entries := m.transcript.Conversations()
	if len(entries) < 2 {
		return m, nil
	}

	next := m.selectedConvo + delta
	if next < 0 {
		next = len(entries) - 1
	}
	if next >= len(entries) {
		next = 0
	}
	m.selectedConvo = next

	m.transcript.Clear()
	id := entries[next].ID
	err := m.controller.SelectConversation(id)
	m.refreshViewport()
	return m, func() tea.Msg {
		return ConversationSwitchedMsg{ID: id, Err: err}
	}
}
