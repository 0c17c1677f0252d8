// Package layout decides how each line of a pattern is typeset.
package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the typographic role of a line
type Kind int

const (
	Blank Kind = iota
	Heading
	Labeled
	Plain
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Heading:
		return "heading"
	case Labeled:
		return "labeled"
	case Plain:
		return "plain"
	default:
		return "unknown"
	}
}

// Line is one classified line. Label and Value are only set for Labeled
// lines: Label runs up to and including the first colon, Value is the rest
// of the line verbatim.
type Line struct {
	Kind  Kind
	Text  string
	Label string
	Value string
}

// Classify classifies a single line. It looks at nothing but the line.
func Classify(line string) Line {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Line{Kind: Blank, Text: line}
	}

	if isHeading(trimmed) {
		return Line{Kind: Heading, Text: line}
	}

	if isLabeled(trimmed) {
		idx := strings.Index(line, ":")
		return Line{
			Kind:  Labeled,
			Text:  line,
			Label: line[:idx+1],
			Value: line[idx+1:],
		}
	}

	return Line{Kind: Plain, Text: line}
}

// ClassifyAll splits content into lines and classifies each one
func ClassifyAll(content string) []Line {
	if content == "" {
		return nil
	}
	raw := strings.Split(content, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, Classify(strings.TrimSuffix(l, "\r")))
	}
	return lines
}

// isHeading: at least two characters, all caps and no trailing colon.
// "MASKOR:" is therefore not a heading.
func isHeading(trimmed string) bool {
	if utf8.RuneCountInString(trimmed) < 2 {
		return false
	}
	if !isAllCaps(trimmed) {
		return false
	}
	return !strings.HasSuffix(trimmed, ":")
}

// isLabeled: contains a colon and is not an all-caps line. Together with
// isHeading this leaves "MASKOR:" as plain text.
func isLabeled(trimmed string) bool {
	if !strings.Contains(trimmed, ":") {
		return false
	}
	return !(isAllCaps(trimmed) && !hasLower(trimmed))
}

// isAllCaps reports whether s is unchanged by upper-casing and has at least
// one upper-case letter. Casers are not safe for concurrent use, so one is
// built per call.
func isAllCaps(s string) bool {
	if !hasUpper(s) {
		return false
	}
	return cases.Upper(language.Und).String(s) == s
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}
