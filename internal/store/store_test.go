// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/draftly/draftly-tui/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	// Same millisecond for every creation; the counter must break ties.
	s := NewWithClock(fixedClock(time.UnixMilli(1700000000000)))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		conv := s.Create("topic")
		if seen[conv.ID] {
			t.Fatalf("duplicate conversation id %q at creation %d", conv.ID, i)
		}
		seen[conv.ID] = true
	}
}

func TestCreateIDEncodesTimestamp(t *testing.T) {
	s := NewWithClock(fixedClock(time.UnixMilli(1700000000000)))
	conv := s.Create("topic")
	if !strings.HasPrefix(conv.ID, "c_1700000000000_") {
		t.Errorf("id = %q, want c_1700000000000_ prefix", conv.ID)
	}
}

func TestCreateMakesConversationActive(t *testing.T) {
	s := New()
	first := s.Create("first")
	second := s.Create("second")

	id, ok := s.ActiveID()
	if !ok {
		t.Fatal("expected an active conversation")
	}
	if id != second.ID {
		t.Errorf("active = %q, want most recent %q", id, second.ID)
	}
	_ = first
}

func TestSetActiveSwitchesWithoutTouchingLogs(t *testing.T) {
	s := New()
	first := s.Create("first")
	if _, err := s.Append(first.ID, model.RoleUser, "hello"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	second := s.Create("second")

	if err := s.SetActive(first.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	id, _ := s.ActiveID()
	if id != first.ID {
		t.Errorf("active = %q, want %q", id, first.ID)
	}

	msgs, err := s.Replay(first.ID)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "hello" {
		t.Errorf("switching mutated the log: %+v", msgs)
	}
	if got, _ := s.Replay(second.ID); len(got) != 0 {
		t.Errorf("second log = %d messages, want 0", len(got))
	}
}

func TestSetActiveUnknownID(t *testing.T) {
	s := New()
	err := s.SetActive("c_0_0")
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("err = %v, want ErrConversationNotFound", err)
	}
}

func TestClearActive(t *testing.T) {
	s := New()
	s.Create("topic")
	s.ClearActive()
	if _, ok := s.ActiveID(); ok {
		t.Error("expected no active conversation after ClearActive")
	}
}

func TestAppendUnknownID(t *testing.T) {
	s := New()
	_, err := s.Append("c_0_0", model.RoleUser, "hello")
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("err = %v, want ErrConversationNotFound", err)
	}
}

func TestAppendRejectsInvalidRole(t *testing.T) {
	s := New()
	conv := s.Create("Cats")

	_, err := s.Append(conv.ID, model.Role("system"), "hello")
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}
	if conv.MessageCount() != 0 {
		t.Error("rejected append must not grow the log")
	}
}

func TestReplayPreservesOrderAndContent(t *testing.T) {
	s := New()
	conv := s.Create("Cats")
	if _, err := s.Append(conv.ID, model.RoleUser, "Cats"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := s.Append(conv.ID, model.RoleAssistant, "**Cats** are great"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	msgs, err := s.Replay(conv.ID)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Replay returned %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Text != "Cats" {
		t.Errorf("first message = %s %q", msgs[0].Role, msgs[0].Text)
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Text != "**Cats** are great" {
		t.Errorf("second message = %s %q", msgs[1].Role, msgs[1].Text)
	}
}

func TestReplayReturnsDetachedCopies(t *testing.T) {
	s := New()
	conv := s.Create("topic")
	if _, err := s.Append(conv.ID, model.RoleUser, "original"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	msgs, _ := s.Replay(conv.ID)
	msgs[0].Text = "mutated"

	again, _ := s.Replay(conv.ID)
	if again[0].Text != "original" {
		t.Errorf("stored log mutated through replay copy: %q", again[0].Text)
	}
}

func TestReplayUnknownID(t *testing.T) {
	s := New()
	_, err := s.Replay("c_0_0")
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("err = %v, want ErrConversationNotFound", err)
	}
}

func TestAppendTimestampsNonDecreasing(t *testing.T) {
	// A clock that jumps backwards must not produce out-of-order timestamps.
	times := []time.Time{
		time.UnixMilli(3000),
		time.UnixMilli(5000),
		time.UnixMilli(4000),
	}
	i := 0
	s := NewWithClock(func() time.Time {
		ts := times[i%len(times)]
		i++
		return ts
	})

	conv := s.Create("topic")
	for j := 0; j < 3; j++ {
		if _, err := s.Append(conv.ID, model.RoleUser, "m"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	msgs, _ := s.Replay(conv.ID)
	for j := 1; j < len(msgs); j++ {
		if msgs[j].Timestamp.Before(msgs[j-1].Timestamp) {
			t.Errorf("timestamp %d (%v) before %d (%v)",
				j, msgs[j].Timestamp, j-1, msgs[j-1].Timestamp)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	base := time.UnixMilli(1000)
	i := 0
	s := NewWithClock(func() time.Time {
		ts := base.Add(time.Duration(i) * time.Second)
		i++
		return ts
	})

	s.Create("first")
	s.Create("second")
	s.Create("third")

	metas := s.List()
	if len(metas) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(metas))
	}
	want := []string{"third", "second", "first"}
	for j, topic := range want {
		if metas[j].Topic != topic {
			t.Errorf("metas[%d].Topic = %q, want %q", j, metas[j].Topic, topic)
		}
	}
}

func TestObserverNotifiedOnCreate(t *testing.T) {
	s := New()
	var gotTopic, gotID string
	s.SetObserver(func(topic, id string) {
		gotTopic, gotID = topic, id
	})

	conv := s.Create("Rust ownership")
	if gotTopic != "Rust ownership" {
		t.Errorf("observer topic = %q", gotTopic)
	}
	if gotID != conv.ID {
		t.Errorf("observer id = %q, want %q", gotID, conv.ID)
	}
}

func TestGetUnknownID(t *testing.T) {
	s := New()
	if _, err := s.Get("nope"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("err = %v, want ErrConversationNotFound", err)
	}
}
