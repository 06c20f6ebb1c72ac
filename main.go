// draftly - a terminal client for an AI blog-drafting service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/draftly/draftly-tui/internal/config"
	"github.com/draftly/draftly-tui/internal/gateway"
	"github.com/draftly/draftly-tui/internal/reveal"
	"github.com/draftly/draftly-tui/internal/session"
	"github.com/draftly/draftly-tui/internal/store"
	"github.com/draftly/draftly-tui/internal/ui/chat"
	"github.com/draftly/draftly-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (default ~/.draftly/config.toml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("draftly %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// Load configuration at startup
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Request logging goes to a file; writing to stderr would corrupt the
	// alternate screen buffer while the program runs.
	closeLog := redirectLogging()
	defer closeLog()

	// Generation service client
	client := gateway.NewClient(cfg.Service.URL).WithTimeout(cfg.Timeout())

	// Conversation store and rendering surfaces
	convStore := store.New()
	theme := styles.DefaultTheme()
	transcript := chat.NewTranscript(theme.RichtextStyles())

	// Session controller drives the request/reveal round trip
	controller := session.NewController(convStore, client, transcript, reveal.Options{
		CharsPerTick: cfg.Reveal.CharsPerTick,
		TickInterval: cfg.TickInterval(),
	})

	chatModel := chat.New(controller, transcript, theme, cfg)

	// Create the Bubble Tea program
	p := tea.NewProgram(
		appModel{chat: chatModel},
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running draftly: %v\n", err)
		os.Exit(1)
	}
}

// redirectLogging sends the stdlib logger to ~/.draftly/draftly.log. Returns a
// cleanup function; on any failure logging is discarded rather than printed
// over the TUI.
func redirectLogging() func() {
	if err := config.EnsureConfigDir(); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "draftly.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appModel is the root Bubble Tea model. It delegates everything to the chat
// view; keeping the wrapper thin leaves room for additional top-level screens.
type appModel struct {
	chat chat.Model
}

// Init initializes the model.
func (a appModel) Init() tea.Cmd {
	return a.chat.Init()
}

// Update handles messages and updates the model.
func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

// View renders the current state.
func (a appModel) View() string {
	return a.chat.View()
}
