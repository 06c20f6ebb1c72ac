// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal simulates live generation by disclosing a captured text to
// a surface one small chunk per tick, then swapping in the formatted rich
// text exactly once at the end.
//
// Scheduling is cooperative: the engine never sleeps and never spawns a
// goroutine. Each Tick does a constant amount of work and returns control to
// the caller, which re-arms its own timer (the TUI uses tea.Tick) until Tick
// reports that no further ticks are needed.
package reveal

import (
	"sync"
	"time"

	"github.com/draftly/draftly-tui/internal/richtext"
)

// Default pacing, taken from the product's original typewriter feel.
const (
	DefaultCharsPerTick = 1
	DefaultTickInterval = 6 * time.Millisecond
)

// =============================================================================
// SURFACE
// =============================================================================

// Surface is a renderable target for one assistant bubble. During the reveal
// it receives growing plain prefixes; at completion it receives the formatted
// document exactly once.
type Surface interface {
	// ShowPlain replaces the surface content with an unformatted prefix.
	ShowPlain(prefix string)

	// ShowFormatted replaces the surface content with the final rich text.
	ShowFormatted(doc *richtext.Document)
}

// =============================================================================
// REVEAL ENGINE
// =============================================================================

// state tracks the engine lifecycle. Completion and cancellation are
// terminal and mutually exclusive: exactly one of them ends a reveal.
type state int

const (
	stateRunning state = iota
	stateDone
	stateCancelled
)

// Options controls reveal pacing.
type Options struct {
	// CharsPerTick is how many runes each tick discloses (default 1).
	CharsPerTick int

	// TickInterval is the suggested delay between ticks (default 6ms).
	TickInterval time.Duration
}

// Reveal drives the progressive disclosure of one text onto one surface.
// The payload is captured at New and never re-read from an external source.
//
// The mutex guards the streaming state: the TUI drives
// Tick and Cancel from a single update loop, but nothing here breaks if a
// caller introduces real parallelism.
type Reveal struct {
	mu       sync.Mutex
	surface  Surface
	full     string
	runes    []rune
	pos      int
	chunk    int
	interval time.Duration
	state    state
}

// New creates a reveal for fullText onto surface. Invalid options fall back
// to the defaults.
func New(surface Surface, fullText string, opts Options) *Reveal {
	chunk := opts.CharsPerTick
	if chunk <= 0 {
		chunk = DefaultCharsPerTick
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	return &Reveal{
		surface:  surface,
		full:     fullText,
		runes:    []rune(fullText),
		chunk:    chunk,
		interval: interval,
	}
}

// Interval returns the suggested delay before the next Tick.
func (r *Reveal) Interval() time.Duration {
	return r.interval
}

// Tick advances the reveal by one chunk. It writes the next, strictly
// longer, plain prefix to the surface; when the text is exhausted it
// performs the single final transition to the formatted document.
//
// Returns true when no further ticks are needed (completed or cancelled).
func (r *Reveal) Tick() bool {
	r.mu.Lock()
	if r.state != stateRunning {
		r.mu.Unlock()
		return true
	}

	if r.pos < len(r.runes) {
		r.pos += r.chunk
		if r.pos > len(r.runes) {
			r.pos = len(r.runes)
		}
		prefix := string(r.runes[:r.pos])
		finished := r.pos == len(r.runes)
		if finished {
			r.state = stateDone
		}
		r.mu.Unlock()

		r.surface.ShowPlain(prefix)
		if finished {
			r.surface.ShowFormatted(richtext.Format(r.full))
		}
		return finished
	}

	// Empty payload: nothing to disclose, go straight to the final render.
	r.state = stateDone
	r.mu.Unlock()
	r.surface.ShowFormatted(richtext.Format(r.full))
	return true
}

// Cancel stops the reveal. The surface keeps whatever partial prefix it
// had, later Ticks are no-ops and the final formatted transition never
// fires. Cancelling an already-completed reveal does nothing.
func (r *Reveal) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateRunning {
		r.state = stateCancelled
	}
}

// Done reports whether the reveal ran to completion.
func (r *Reveal) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateDone
}

// Cancelled reports whether the reveal was cancelled before completion.
func (r *Reveal) Cancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateCancelled
}
