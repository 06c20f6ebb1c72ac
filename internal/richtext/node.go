// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package richtext converts the lightweight markup dialect returned by the
// drafting service into a structured node tree and renders that tree for the
// terminal.
//
// The dialect is deliberately small: up to three heading levels (`# `, `## `,
// `### `), inline bold (`**...**`), dash lists (`- `), blank-line separated
// paragraphs. Parsing is multi-pass over lines and runes; there is no regular
// expression anywhere in the package, and no pass ever re-scans output it
// produced itself.
package richtext

import "strings"

// =============================================================================
// NODE TYPES
// =============================================================================

// Kind identifies a node variant in the rich text tree.
type Kind int

const (
	// KindText is a plain text span.
	KindText Kind = iota
	// KindBold is a bold text span.
	KindBold
	// KindLineBreak is a soft break inside a paragraph.
	KindLineBreak
	// KindHeading is a level 1-3 heading.
	KindHeading
	// KindParagraph is a block of inline children.
	KindParagraph
	// KindList is a container of consecutive list items.
	KindList
	// KindListItem is a single list entry holding inline children.
	KindListItem
)

// String returns the node kind name, mostly for test failure output.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindBold:
		return "Bold"
	case KindLineBreak:
		return "LineBreak"
	case KindHeading:
		return "Heading"
	case KindParagraph:
		return "Paragraph"
	case KindList:
		return "List"
	case KindListItem:
		return "ListItem"
	default:
		return "Unknown"
	}
}

// Node is one element of the rich text tree. The tree is immutable once
// built: Format returns a fresh tree and nothing in this package mutates a
// returned node.
type Node struct {
	Kind Kind

	// Text carries content for Text, Bold and Heading nodes.
	Text string

	// Level is the heading level (1-3), set only for KindHeading.
	Level int

	// Children holds inline spans for Paragraph and ListItem nodes, and
	// ListItem nodes for List nodes.
	Children []*Node
}

// Document is the root of a formatted tree: an ordered sequence of block
// nodes (headings, paragraphs, lists).
type Document struct {
	Blocks []*Node
}

// IsEmpty returns true if the document holds no blocks.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Blocks) == 0
}

// PlainText flattens the document back to plain text with no markers.
// Line breaks become newlines, blocks are separated by blank lines and list
// items each take a line. Useful for previews and for tests.
func (d *Document) PlainText() string {
	if d.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	for i, block := range d.Blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writePlain(&sb, block)
	}
	return sb.String()
}

// writePlain appends the plain text of a node to sb.
func writePlain(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText, KindBold, KindHeading:
		sb.WriteString(n.Text)
	case KindLineBreak:
		sb.WriteByte('\n')
	case KindParagraph:
		for _, child := range n.Children {
			writePlain(sb, child)
		}
	case KindList:
		for i, item := range n.Children {
			if i > 0 {
				sb.WriteByte('\n')
			}
			writePlain(sb, item)
		}
	case KindListItem:
		for _, child := range n.Children {
			writePlain(sb, child)
		}
	}
}

// newText creates a plain text span.
func newText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// newBold creates a bold span.
func newBold(text string) *Node {
	return &Node{Kind: KindBold, Text: text}
}

// newLineBreak creates a soft line break.
func newLineBreak() *Node {
	return &Node{Kind: KindLineBreak}
}

// newHeading creates a heading block.
func newHeading(level int, text string) *Node {
	return &Node{Kind: KindHeading, Level: level, Text: text}
}

// newParagraph creates a paragraph block from inline children.
func newParagraph(children []*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

// newList creates a list container from item nodes.
func newList(items []*Node) *Node {
	return &Node{Kind: KindList, Children: items}
}

// newListItem creates a list item from inline children.
func newListItem(children []*Node) *Node {
	return &Node{Kind: KindListItem, Children: children}
}
