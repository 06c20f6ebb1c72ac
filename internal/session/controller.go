// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session wires the conversation store, the generation gateway and
// the rendering surface into the send/reply flow.
//
// The controller owns the flow semantics: which conversation a submission
// lands in, what gets stored on success and on failure, and what the
// renderer is told. It never draws anything itself.
package session

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/draftly/draftly-tui/internal/gateway"
	"github.com/draftly/draftly-tui/internal/model"
	"github.com/draftly/draftly-tui/internal/reveal"
	"github.com/draftly/draftly-tui/internal/richtext"
	"github.com/draftly/draftly-tui/internal/store"
)

// LatencyError is the latency label reported when a round trip failed.
const LatencyError = "error"

// GeneratingPlaceholder fills the assistant bubble while the request is in
// flight. The first reveal write, or the inline error text, replaces it.
const GeneratingPlaceholder = "🤖 Researching and composing..."

// =============================================================================
// RENDERER CONTRACT
// =============================================================================

// Renderer is the outbound contract the controller drives the UI through.
//
// RenderAssistantBubble creates an assistant bubble showing placeholder and
// returns the surface the reveal engine (or replay) will write into. The
// controller never holds on to a surface beyond the message it was created
// for.
type Renderer interface {
	RenderUserBubble(text string)
	RenderAssistantBubble(placeholder string) reveal.Surface
	UpdateConversationList(topic, id string)
	ReportLatency(label string)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller coordinates one submission at a time against the store and
// the generation service.
type Controller struct {
	store    *store.Store
	client   *gateway.Client
	renderer Renderer
	reveal   reveal.Options
}

// NewController wires a controller. The store's listing observer is pointed
// at the renderer so conversation creation shows up in the sidebar without
// extra plumbing.
func NewController(st *store.Store, client *gateway.Client, renderer Renderer, opts reveal.Options) *Controller {
	c := &Controller{
		store:    st,
		client:   client,
		renderer: renderer,
		reveal:   opts,
	}
	st.SetObserver(renderer.UpdateConversationList)
	return c
}

// Store exposes the underlying conversation store.
func (c *Controller) Store() *store.Store {
	return c.store
}

// =============================================================================
// SEND/REPLY FLOW
// =============================================================================

// Submit runs one full send/reply round trip for topic.
//
// The user message is stored and rendered before the network call, and it
// stays either way: a failed request never rolls the transcript back. A
// placeholder assistant bubble goes up before the request so the user sees
// where the reply will land; the outcome is written into that same surface.
// On success the assistant draft is stored verbatim and a reveal is
// returned for the caller to drive; on failure the error text replaces the
// placeholder as an error-role message and the latency label reads "error".
func (c *Controller) Submit(ctx context.Context, topic string, opts gateway.Options) (*reveal.Reveal, error) {
	id, ok := c.store.ActiveID()
	if !ok {
		id = c.store.Create(topic).ID
	}

	if _, err := c.store.Append(id, model.RoleUser, topic); err != nil {
		return nil, err
	}
	c.renderer.RenderUserBubble(topic)
	surface := c.renderer.RenderAssistantBubble(GeneratingPlaceholder)

	result, err := c.client.Generate(ctx, gateway.Request{Topic: topic, Options: opts})
	if err != nil {
		log.Printf("ERROR: %v", err)
		c.renderer.ReportLatency(LatencyError)

		text := "ERROR: " + err.Error()
		if _, appendErr := c.store.Append(id, model.RoleError, text); appendErr != nil {
			return nil, appendErr
		}
		surface.ShowPlain(text)
		return nil, err
	}

	if _, err := c.store.Append(id, model.RoleAssistant, result.Text); err != nil {
		return nil, err
	}
	c.renderer.ReportLatency(FormatLatency(result.Latency))

	return reveal.New(surface, result.Text, c.reveal), nil
}

// =============================================================================
// CONVERSATION SWITCHING
// =============================================================================

// NewSession drops the active conversation pointer. The next Submit
// creates a fresh conversation titled after its topic.
func (c *Controller) NewSession() {
	c.store.ClearActive()
}

// SelectConversation makes the given conversation active and replays its
// log through the renderer. User messages render as plain bubbles;
// assistant drafts jump straight to their formatted form, with no
// incremental reveal; error messages replay as plain text.
func (c *Controller) SelectConversation(id string) error {
	if err := c.store.SetActive(id); err != nil {
		return err
	}

	msgs, err := c.store.Replay(id)
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		switch msg.Role {
		case model.RoleUser:
			c.renderer.RenderUserBubble(msg.Text)
		case model.RoleAssistant:
			c.renderer.RenderAssistantBubble("").ShowFormatted(richtext.Format(msg.Text))
		case model.RoleError:
			c.renderer.RenderAssistantBubble("").ShowPlain(msg.Text)
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// FormatLatency renders a round-trip duration as the status bar label,
// whole milliseconds.
func FormatLatency(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + " ms"
}
