// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"strings"
	"testing"

	"github.com/draftly/draftly-tui/internal/richtext"
)

// fakeSurface records everything the engine writes.
type fakeSurface struct {
	plains    []string
	formatted []*richtext.Document
}

func (f *fakeSurface) ShowPlain(prefix string) {
	f.plains = append(f.plains, prefix)
}

func (f *fakeSurface) ShowFormatted(doc *richtext.Document) {
	f.formatted = append(f.formatted, doc)
}

// runToCompletion ticks until the engine reports it is finished.
func runToCompletion(t *testing.T, r *Reveal) int {
	t.Helper()
	ticks := 0
	for !r.Tick() {
		ticks++
		if ticks > 100000 {
			t.Fatal("reveal never completed")
		}
	}
	return ticks + 1
}

func TestReveal_CompletionRendersFormattedText(t *testing.T) {
	surface := &fakeSurface{}
	text := "Rust uses **ownership**."
	r := New(surface, text, Options{})

	runToCompletion(t, r)

	if !r.Done() {
		t.Error("Done = false after completion")
	}
	if len(surface.formatted) != 1 {
		t.Fatalf("formatted transitions = %d, want exactly 1", len(surface.formatted))
	}
	if got, want := surface.formatted[0].PlainText(), richtext.Format(text).PlainText(); got != want {
		t.Errorf("final content = %q, want %q", got, want)
	}
}

func TestReveal_PrefixesStrictlyIncrease(t *testing.T) {
	surface := &fakeSurface{}
	r := New(surface, "hello world", Options{})

	runToCompletion(t, r)

	for i, prefix := range surface.plains {
		if !strings.HasPrefix("hello world", prefix) {
			t.Errorf("write %d = %q is not a prefix of the payload", i, prefix)
		}
		if i > 0 && len(prefix) <= len(surface.plains[i-1]) {
			t.Errorf("write %d did not grow: %q -> %q", i, surface.plains[i-1], prefix)
		}
	}
	if last := surface.plains[len(surface.plains)-1]; last != "hello world" {
		t.Errorf("last prefix = %q, want full payload", last)
	}
}

func TestReveal_CancelStopsTicksAndFinalTransition(t *testing.T) {
	surface := &fakeSurface{}
	r := New(surface, "some longer text to reveal", Options{})

	const k = 5
	for i := 0; i < k; i++ {
		if r.Tick() {
			t.Fatal("reveal finished too early")
		}
	}
	r.Cancel()

	if !r.Tick() {
		t.Error("Tick after Cancel should report finished")
	}
	if len(surface.plains) != k {
		t.Errorf("plain writes after cancel = %d, want %d", len(surface.plains), k)
	}
	if len(surface.formatted) != 0 {
		t.Errorf("final transition fired after cancellation")
	}
	if r.Done() {
		t.Error("Done = true for a cancelled reveal")
	}
	if !r.Cancelled() {
		t.Error("Cancelled = false after Cancel")
	}
}

func TestReveal_CancelBoundsPrefixLength(t *testing.T) {
	surface := &fakeSurface{}
	r := New(surface, strings.Repeat("x", 100), Options{CharsPerTick: 3})

	const k = 4
	for i := 0; i < k; i++ {
		r.Tick()
	}
	r.Cancel()

	last := surface.plains[len(surface.plains)-1]
	if len(last) > k*3 {
		t.Errorf("prefix length = %d, want <= %d", len(last), k*3)
	}
}

func TestReveal_CancelAfterCompletionIsNoOp(t *testing.T) {
	surface := &fakeSurface{}
	r := New(surface, "hi", Options{})

	runToCompletion(t, r)
	r.Cancel()

	if !r.Done() {
		t.Error("completed reveal flipped to cancelled")
	}
	if r.Cancelled() {
		t.Error("Cancelled = true for a completed reveal")
	}
}

func TestReveal_ChunkedTicks(t *testing.T) {
	surface := &fakeSurface{}
	r := New(surface, "abcdefghij", Options{CharsPerTick: 4})

	ticks := runToCompletion(t, r)

	// ceil(10/4) = 3 disclosing ticks; completion happens on the last one.
	if ticks != 3 {
		t.Errorf("ticks = %d, want 3", ticks)
	}
	if got := surface.plains[0]; got != "abcd" {
		t.Errorf("first prefix = %q, want %q", got, "abcd")
	}
	if len(surface.formatted) != 1 {
		t.Errorf("formatted transitions = %d, want 1", len(surface.formatted))
	}
}

func TestReveal_EmptyPayload(t *testing.T) {
	surface := &fakeSurface{}
	r := New(surface, "", Options{})

	if !r.Tick() {
		t.Error("empty payload should finish on the first tick")
	}
	if len(surface.plains) != 0 {
		t.Errorf("plain writes = %d, want 0", len(surface.plains))
	}
	if len(surface.formatted) != 1 {
		t.Errorf("formatted transitions = %d, want 1", len(surface.formatted))
	}
}

func TestReveal_PayloadCapturedAtStart(t *testing.T) {
	surface := &fakeSurface{}
	text := strings.Repeat("a", 10)
	r := New(surface, text, Options{})

	// Mutating the caller's copy after New must not affect the reveal.
	text = "changed"
	_ = text

	runToCompletion(t, r)
	if got := surface.plains[len(surface.plains)-1]; got != strings.Repeat("a", 10) {
		t.Errorf("payload was re-read mid-stream: %q", got)
	}
}
