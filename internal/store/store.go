// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store keeps the in-memory registry of conversation threads.
//
// Conversations live for the lifetime of the process only; there is no
// on-disk persistence. At most one conversation is "active" at a time and
// switching the active conversation never touches message logs, only the
// pointer.
package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/draftly/draftly-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrConversationNotFound is returned when a conversation id is unknown.
// Use errors.Is(err, ErrConversationNotFound) to check for this error.
var ErrConversationNotFound = &ConversationError{Message: "conversation not found"}

// ErrInvalidRole is returned when Append is given a role outside the known
// set.
var ErrInvalidRole = &ConversationError{Message: "invalid message role"}

// ConversationError represents a conversation-related error.
type ConversationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing conversation errors.
func (e *ConversationError) Is(target error) bool {
	t, ok := target.(*ConversationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Meta is lightweight conversation metadata for the sidebar listing.
type Meta struct {
	ID           string
	Topic        string
	MessageCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Preview      string
}

// Observer is notified when a conversation is created, so the listing UI
// can add an entry without polling.
type Observer func(topic, id string)

// Store is the in-memory conversation registry.
//
// The store is mutated from the single control flow handling send, create
// and switch actions; the mutex only matters if a caller introduces real
// parallelism, and it keeps the store safe if one does.
type Store struct {
	mu       sync.Mutex
	convos   map[string]*model.Conversation
	order    []string // creation order, oldest first
	active   string   // id of the active conversation, "" for none
	seq      uint64   // monotonic counter, breaks same-millisecond ties
	now      func() time.Time
	observer Observer
}

// New creates an empty store using the wall clock.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates a store with an injected time source. Tests use this
// to force same-millisecond creations and fixed timestamps.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		convos: make(map[string]*model.Conversation),
		now:    now,
	}
}

// SetObserver registers the listing observer. A nil observer is allowed.
func (s *Store) SetObserver(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// =============================================================================
// LIFECYCLE OPERATIONS
// =============================================================================

// Create registers a new conversation for topic, marks it active and
// notifies the listing observer. The id combines the creation time in unix
// milliseconds with a monotonic counter, so two conversations created
// within the same millisecond still get distinct ids.
func (s *Store) Create(topic string) *model.Conversation {
	s.mu.Lock()
	ts := s.now()
	s.seq++
	id := "c_" + strconv.FormatInt(ts.UnixMilli(), 10) + "_" + strconv.FormatUint(s.seq, 10)

	conv := model.NewConversation(id, topic, ts)
	s.convos[id] = conv
	s.order = append(s.order, id)
	s.active = id
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer(topic, id)
	}
	return conv
}

// SetActive switches the active pointer to the given conversation.
// Message logs are never touched. Returns ErrConversationNotFound for an
// unknown id.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convos[id]; !ok {
		return ErrConversationNotFound
	}
	s.active = id
	return nil
}

// ActiveID returns the id of the active conversation, or ok=false when no
// conversation is active. Callers resolve "current" through this before
// appending.
func (s *Store) ActiveID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != ""
}

// ClearActive drops the active pointer (new session). Logs are untouched.
func (s *Store) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ""
}

// =============================================================================
// MESSAGE OPERATIONS
// =============================================================================

// Append adds a message to a conversation's log. The message timestamp
// comes from the store clock, so timestamps within a log are non-decreasing.
// Returns ErrConversationNotFound for an unknown id and ErrInvalidRole for
// a role outside the known set.
func (s *Store) Append(id string, role model.Role, text string) (*model.Message, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convos[id]
	if !ok {
		return nil, ErrConversationNotFound
	}

	ts := s.now()
	if last := conv.LastMessage(); last != nil && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}
	msg := model.NewMessageAt(role, text, ts)
	conv.Append(msg)
	return msg, nil
}

// Replay returns an ordered copy of a conversation's messages for
// re-rendering UI state from scratch. The copies are detached: mutating
// them never affects the stored log.
func (s *Store) Replay(id string) ([]*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convos[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv.Clone().Messages, nil
}

// Get returns the conversation for id, or ErrConversationNotFound.
func (s *Store) Get(id string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convos[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// =============================================================================
// LISTING
// =============================================================================

// List returns metadata for all conversations, most recently created first.
func (s *Store) List() []Meta {
	s.mu.Lock()
	defer s.mu.Unlock()

	metas := make([]Meta, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		conv := s.convos[s.order[i]]
		metas = append(metas, Meta{
			ID:           conv.ID,
			Topic:        conv.Topic,
			MessageCount: conv.MessageCount(),
			CreatedAt:    conv.CreatedAt,
			UpdatedAt:    conv.UpdatedAt,
			Preview:      conv.Preview(80),
		})
	}
	return metas
}

// Len returns the number of stored conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.convos)
}
