// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"sync"

	"github.com/draftly/draftly-tui/internal/reveal"
	"github.com/draftly/draftly-tui/internal/richtext"
)

// =============================================================================
// BUBBLES
// =============================================================================

// BubbleKind identifies how a transcript bubble is styled.
type BubbleKind int

const (
	BubbleUser BubbleKind = iota
	BubbleAssistant
	BubbleError
)

// bubble is one rendered message in the transcript. Assistant bubbles double
// as the reveal surface: the animation writes growing prefixes into them and
// finishes with the formatted draft.
//
// Writes arrive from the command goroutine running the round trip while the
// view reads concurrently, hence the mutex.
type bubble struct {
	mu      sync.Mutex
	kind    BubbleKind
	styles  richtext.Styles
	content string
}

// ShowPlain implements reveal.Surface.
func (b *bubble) ShowPlain(prefix string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// Failed round trips arrive as plain "ERROR: ..." text on an assistant
	// surface; restyle them as error bubbles.
	if b.kind == BubbleAssistant && strings.HasPrefix(prefix, "ERROR: ") {
		b.kind = BubbleError
	}
	b.content = prefix
}

// ShowFormatted implements reveal.Surface.
func (b *bubble) ShowFormatted(doc *richtext.Document) {
	rendered := richtext.Render(doc, b.styles)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = rendered
}

func (b *bubble) snapshot() BubbleView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BubbleView{Kind: b.kind, Content: b.content}
}

// BubbleView is an immutable snapshot of one bubble for drawing.
type BubbleView struct {
	Kind    BubbleKind
	Content string
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// ConvoEntry is one sidebar listing entry, newest first.
type ConvoEntry struct {
	Topic string
	ID    string
}

// Transcript is the chat screen state the session controller renders into.
// It implements session.Renderer and is shared between the Bubble Tea model
// and the command goroutines running round trips.
type Transcript struct {
	mu      sync.Mutex
	styles  richtext.Styles
	bubbles []*bubble
	latency string
	convos  []ConvoEntry
}

// NewTranscript creates an empty transcript rendering formatted drafts with
// the given styles.
func NewTranscript(styles richtext.Styles) *Transcript {
	return &Transcript{styles: styles}
}

// RenderUserBubble implements session.Renderer.
func (t *Transcript) RenderUserBubble(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bubbles = append(t.bubbles, &bubble{kind: BubbleUser, content: text})
}

// RenderAssistantBubble implements session.Renderer. The bubble shows
// placeholder until the first surface write. The returned surface belongs
// to the new bubble and stays valid for replay and reveal writes.
func (t *Transcript) RenderAssistantBubble(placeholder string) reveal.Surface {
	b := &bubble{kind: BubbleAssistant, styles: t.styles, content: placeholder}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bubbles = append(t.bubbles, b)
	return b
}

// UpdateConversationList implements session.Renderer. New conversations go
// to the top of the sidebar.
func (t *Transcript) UpdateConversationList(topic, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.convos = append([]ConvoEntry{{Topic: topic, ID: id}}, t.convos...)
}

// ReportLatency implements session.Renderer.
func (t *Transcript) ReportLatency(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latency = label
}

// =============================================================================
// VIEW ACCESSORS
// =============================================================================

// Bubbles returns a drawing snapshot of the transcript.
func (t *Transcript) Bubbles() []BubbleView {
	t.mu.Lock()
	bubbles := make([]*bubble, len(t.bubbles))
	copy(bubbles, t.bubbles)
	t.mu.Unlock()

	views := make([]BubbleView, len(bubbles))
	for i, b := range bubbles {
		views[i] = b.snapshot()
	}
	return views
}

// Latency returns the last reported latency label, or "" before the first
// round trip.
func (t *Transcript) Latency() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latency
}

// Conversations returns the sidebar entries, newest first.
func (t *Transcript) Conversations() []ConvoEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	entries := make([]ConvoEntry, len(t.convos))
	copy(entries, t.convos)
	return entries
}

// Clear empties the visible transcript. The sidebar and latency label are
// kept; only bubbles belong to the conversation being switched away from.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bubbles = nil
}
