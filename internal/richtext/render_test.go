// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"strings"
	"testing"
)

func TestRender_PlainParagraphPassesThrough(t *testing.T) {
	doc := Format("nothing fancy here")
	got := Render(doc, DefaultStyles())

	if !strings.Contains(got, "nothing fancy here") {
		t.Errorf("Render = %q, want the paragraph text", got)
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	if got := Render(Format(""), DefaultStyles()); got != "" {
		t.Errorf("Render of empty doc = %q, want empty string", got)
	}
}

func TestRender_ListItemsGetBullets(t *testing.T) {
	doc := Format("- rule one\n- rule two")
	got := Render(doc, DefaultStyles())

	if strings.Count(got, DefaultStyles().Bullet) != 2 {
		t.Errorf("Render = %q, want two bullets", got)
	}
}

func TestRender_BlocksSeparatedByBlankLine(t *testing.T) {
	doc := Format("# Intro\n\nBody text")
	got := Render(doc, DefaultStyles())

	if !strings.Contains(got, "\n\n") {
		t.Errorf("Render = %q, want a blank line between blocks", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	doc := Format("# Intro\n\nRust uses **ownership**.\n\n- rule one\n- rule two")

	first := Render(doc, DefaultStyles())
	second := Render(doc, DefaultStyles())
	if first != second {
		t.Errorf("Render is not deterministic:\n%q\n%q", first, second)
	}
}
