// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/draftly/draftly-tui/internal/util"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds one chat thread: the topic that started it and its
// append-only message log. The log reflects strict chronological append
// order; timestamps are non-decreasing.
type Conversation struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`
}

// NewConversation creates a conversation with the given id and topic.
// The id is assigned by the store and never reused.
func NewConversation(id, topic string, createdAt time.Time) *Conversation {
	return &Conversation{
		ID:        id,
		Topic:     topic,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Messages:  make([]*Message, 0),
	}
}

// Append adds a message to the end of the log.
func (c *Conversation) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = msg.Timestamp
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// Preview returns a single-line preview of the conversation for listing.
func (c *Conversation) Preview(maxLen int) string {
	text := c.Topic
	if text == "" {
		if first := c.firstUserMessage(); first != nil {
			text = first.Text
		}
	}
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", "")
	return util.TruncateRunes(text, maxLen)
}

// firstUserMessage returns the earliest user message, or nil.
func (c *Conversation) firstUserMessage() *Message {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			return msg
		}
	}
	return nil
}

// Clone creates a deep copy of the conversation. Replay hands out clones so
// callers can never mutate the stored log.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Topic:     c.Topic,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}
