// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import "strings"

// maxHeadingLevel is the deepest heading the dialect supports.
const maxHeadingLevel = 3

// Format parses markdown-like text into a Document.
//
// Format is total: every input, including empty, malformed or adversarial
// markup, yields a valid tree. It never panics and never loops. Formatting
// text that contains no markers yields a tree whose plain text is the input
// unchanged, so running already-rendered output through Format again cannot
// double-wrap anything.
//
// Passes, in order, each consuming the previous pass's output:
//  1. line ending normalization,
//  2. block recognition (headings, list runs, paragraph runs, blank
//     separators) over whole lines,
//  3. inline bold recognition inside paragraph lines and list items.
func Format(input string) *Document {
	lines := strings.Split(normalizeLineEndings(input), "\n")

	doc := &Document{}
	var paraLines []string
	var listItems []string

	flushPara := func() {
		if len(paraLines) == 0 {
			return
		}
		if p := buildParagraph(paraLines); p != nil {
			doc.Blocks = append(doc.Blocks, p)
		}
		paraLines = nil
	}
	flushList := func() {
		if len(listItems) == 0 {
			return
		}
		doc.Blocks = append(doc.Blocks, buildList(listItems))
		listItems = nil
	}

	for _, line := range lines {
		switch {
		case isBlankLine(line):
			// Blank lines end both paragraph and list runs.
			flushList()
			flushPara()

		case isHeadingLine(line):
			flushList()
			flushPara()
			level, text := splitHeading(line)
			doc.Blocks = append(doc.Blocks, newHeading(level, text))

		case isListLine(line):
			// A list run interrupts a paragraph; consecutive items group
			// into the same container.
			flushPara()
			listItems = append(listItems, line[2:])

		default:
			// A plain line after list items starts a fresh block, so
			// non-consecutive items land in separate containers.
			flushList()
			paraLines = append(paraLines, line)
		}
	}
	flushList()
	flushPara()

	return doc
}

// =============================================================================
// PASS 1: LINE ENDINGS
// =============================================================================

// normalizeLineEndings converts CRLF and bare CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// =============================================================================
// PASS 2: BLOCK RECOGNITION
// =============================================================================

// isBlankLine reports whether the line separates blocks. Only truly empty
// lines do; a line of spaces or tabs stays inside its paragraph.
func isBlankLine(line string) bool {
	return line == ""
}

// isHeadingLine reports whether the line starts with one to three `#`
// followed by exactly one space. `#` elsewhere in a line, or more than
// three markers, stays literal text.
func isHeadingLine(line string) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < 1 || level > maxHeadingLevel {
		return false
	}
	return level < len(line) && line[level] == ' '
}

// splitHeading returns the level and content of a heading line.
// Only call after isHeadingLine.
func splitHeading(line string) (int, string) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level, line[level+1:]
}

// isListLine reports whether the line starts a list item (`- ` at line
// start). A dash elsewhere stays literal.
func isListLine(line string) bool {
	return strings.HasPrefix(line, "- ")
}

// buildParagraph assembles paragraph lines into a Paragraph node, inserting
// a LineBreak between lines. Returns nil when the lines carry no content,
// which drops the empty paragraph from the document.
func buildParagraph(lines []string) *Node {
	var children []*Node
	hasContent := false
	for i, line := range lines {
		if i > 0 {
			children = append(children, newLineBreak())
		}
		spans := parseInline(line)
		for _, span := range spans {
			if span.Text != "" {
				hasContent = true
			}
		}
		children = append(children, spans...)
	}
	if !hasContent {
		return nil
	}
	return newParagraph(children)
}

// buildList assembles consecutive item contents into a List container.
func buildList(items []string) *Node {
	nodes := make([]*Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, newListItem(parseInline(item)))
	}
	return newList(nodes)
}

// =============================================================================
// PASS 3: INLINE BOLD
// =============================================================================

// parseInline splits a single line into Text and Bold spans.
//
// Delimiters are non-greedy and do not nest: each `**` opener pairs with the
// next closer. An unterminated opener, or an empty `****` pair, degrades to
// literal text instead of consuming the rest of the line.
func parseInline(s string) []*Node {
	var nodes []*Node
	var plain strings.Builder

	i := 0
	for {
		open := strings.Index(s[i:], "**")
		if open < 0 {
			plain.WriteString(s[i:])
			break
		}
		open += i

		closer := strings.Index(s[open+2:], "**")
		if closer < 0 {
			// Unterminated delimiter: everything stays literal.
			plain.WriteString(s[i:])
			break
		}
		content := s[open+2 : open+2+closer]
		if content == "" {
			// `****` carries nothing; keep the first marker literal and
			// continue scanning after it.
			plain.WriteString(s[i : open+2])
			i = open + 2
			continue
		}

		plain.WriteString(s[i:open])
		if plain.Len() > 0 {
			nodes = append(nodes, newText(plain.String()))
			plain.Reset()
		}
		nodes = append(nodes, newBold(content))
		i = open + 2 + closer + 2
	}

	if plain.Len() > 0 || len(nodes) == 0 {
		nodes = append(nodes, newText(plain.String()))
	}
	return nodes
}
