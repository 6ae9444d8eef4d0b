package templates

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	OpenMarker  = "@["
	CloseMarker = "]@"
)

const maxFragmentLen = 32

type part struct {
	text        string
	placeholder bool
}

// Parse returns the distinct placeholder names of text in order of first
// appearance.
func Parse(text string) ([]string, error) {
	parts, err := scan(text)
	if err != nil {
		return nil, err
	}
	return placeholderNames(parts), nil
}

func placeholderNames(parts []part) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range parts {
		if !p.placeholder || seen[p.text] {
			continue
		}
		seen[p.text] = true
		names = append(names, p.text)
	}
	return names
}

func scan(text string) (parts []part, err error) {
	offset := 0
	for offset < len(text) {
		rest := text[offset:]

		open := strings.Index(rest, OpenMarker)
		if open < 0 {
			parts = append(parts, part{text: rest})
			break
		}
		if open > 0 {
			parts = append(parts, part{text: rest[:open]})
		}

		start := offset + open
		bodyStart := start + len(OpenMarker)
		body := text[bodyStart:]
		end := strings.Index(body, CloseMarker)
		var nested int
		if end >= 0 {
			nested = strings.Index(body[:end], OpenMarker)
		} else {
			nested = strings.Index(body, OpenMarker)
		}

		switch {
		case nested >= 0 && (end < 0 || nested < end):
			at := bodyStart + nested
			return nil, newParseError(text, ErrNested, at, fragment(text, start, at+len(OpenMarker)))
		case end < 0:
			return nil, newParseError(text, ErrUnterminated, start, fragment(text, start, len(text)))
		}

		closeEnd := bodyStart + end + len(CloseMarker)
		name := strings.Trim(body[:end], " \t")
		if !isIdentifier(name) {
			return nil, newParseError(text, ErrInvalidName, start, fragment(text, start, closeEnd))
		}
		parts = append(parts, part{
			text:        name,
			placeholder: true,
		})

		offset = closeEnd
	}
	return parts, nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func fragment(text string, from, to int) string {
	if to-from > maxFragmentLen {
		to = from + maxFragmentLen
		for to > from && !utf8.RuneStart(text[to]) {
			to--
		}
	}
	return text[from:to]
}

func newParseError(text string, reason error, offset int, frag string) *ParseError {
	line, col := position(text, offset)
	return &ParseError{
		Reason:   reason,
		Offset:   offset,
		Line:     line,
		Column:   col,
		Fragment: frag,
	}
}

func position(text string, offset int) (line int, col int) {
	line = 1
	col = 1
	for i, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
