// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Generation: round-trip completion from the drafting service
//   - Reveal: typewriter animation ticks
//   - Conversation: session switching
package chat

import (
	"time"

	"github.com/draftly/draftly-tui/internal/reveal"
)

// =============================================================================
// GENERATION MESSAGES
// =============================================================================

// GenerateDoneMsg signals that a submission round trip finished. On success
// Reveal carries the typewriter animation to drive; on failure Err is set
// and the error text is already in the transcript.
type GenerateDoneMsg struct {
	Reveal *reveal.Reveal
	Err    error
}

// =============================================================================
// REVEAL MESSAGES
// =============================================================================

// RevealTickMsg drives one step of the typewriter animation.
type RevealTickMsg struct {
	Time time.Time
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ConversationSwitchedMsg signals that a sidebar selection was replayed.
type ConversationSwitchedMsg struct {
	ID  string
	Err error
}
