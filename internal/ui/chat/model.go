// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/draftly/draftly-tui/internal/config"
	"github.com/draftly/draftly-tui/internal/reveal"
	"github.com/draftly/draftly-tui/internal/session"
	"github.com/draftly/draftly-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady     State = iota // Ready for input
	StateWaiting                // Round trip in flight
	StateRevealing              // Typing out the draft
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme styles.Theme

	// Dimensions
	width   int
	height  int
	compact bool

	// Flow control
	controller *session.Controller
	transcript *Transcript
	timeout    time.Duration

	// Generation option cyclers (indices into config.Personas / config.Tones)
	personaIdx int
	toneIdx    int

	// Typewriter animation for the draft currently arriving
	activeReveal *reveal.Reveal

	// Sidebar selection (index into transcript.Conversations())
	selectedConvo int

	// Status bar notice, set when a conversation switch fails
	notice string

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap
}

// New creates a new chat model. The transcript must be the same one the
// controller renders into.
func New(controller *session.Controller, transcript *Transcript, theme styles.Theme, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = theme.ComposerPrompt
	ti.Placeholder = "Enter a blog topic..."
	ti.CharLimit = 512
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	m := Model{
		state:      StateReady,
		theme:      theme,
		compact:    cfg.UI.CompactMode,
		controller: controller,
		transcript: transcript,
		timeout:    cfg.Timeout(),
		viewport:   vp,
		input:      ti,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
	}
	m.personaIdx = indexOf(config.Personas, cfg.Generation.Persona)
	m.toneIdx = indexOf(config.Tones, cfg.Generation.Tone)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Persona returns the currently selected persona.
func (m Model) Persona() string {
	return config.Personas[m.personaIdx]
}

// Tone returns the currently selected tone.
func (m Model) Tone() string {
	return config.Tones[m.toneIdx]
}

// InFlight reports whether a submission is being processed or revealed.
func (m Model) InFlight() bool {
	return m.state != StateReady
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return 0
}
