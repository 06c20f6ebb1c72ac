// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestDefaultThemeBubblesAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	user := theme.UserBubble.Render("x")
	assistant := theme.AssistantBubble.Render("x")
	errBubble := theme.ErrorBubble.Render("x")

	// In a non-TTY test run lipgloss strips colors, but borders and
	// padding must still come through.
	if user == "x" {
		t.Error("user bubble renders without any decoration")
	}
	if assistant == "x" {
		t.Error("assistant bubble renders without any decoration")
	}
	if errBubble == "x" {
		t.Error("error bubble renders without any decoration")
	}
}

func TestRichtextStylesBullet(t *testing.T) {
	rt := DefaultTheme().RichtextStyles()
	if rt.Bullet != "• " {
		t.Errorf("Bullet = %q", rt.Bullet)
	}
}

func TestRenderHelpers(t *testing.T) {
	if RenderError("fail") == "" {
		t.Error("RenderError returned empty string")
	}
	if RenderSuccess("ok") == "" {
		t.Error("RenderSuccess returned empty string")
	}
}
