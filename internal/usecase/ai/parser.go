package ai

import (
	"fmt"
	"regexp"
	"strings"
)

var fenceMarkers = []string{"```dot", "```graphviz", "```"}

// Parser post-processes raw completion text
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// CleanText trims completion text and rejects empty content
func (p *Parser) CleanText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}

// ParseGraph strips code fence markers the model may wrap the DOT output
// in and returns the first complete digraph statement. Prose before or
// after the graph is dropped.
func (p *Parser) ParseGraph(raw string) (string, error) {
	code := raw
	for _, marker := range fenceMarkers {
		code = strings.ReplaceAll(code, marker, "")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("empty graph description")
	}

	headers := graphHeader.FindAllStringIndex(code, -1)
	if len(headers) == 0 {
		return "", fmt.Errorf("response is not a directed graph description")
	}
	for _, h := range headers {
		// h[1]-1 is the opening brace of the body
		if end, ok := closingBrace(code, h[1]-1); ok {
			return code[h[0] : end+1], nil
		}
	}
	return "", fmt.Errorf("graph description is not closed")
}

// graphHeader matches `[strict] digraph [ID] {` where ID is a DOT
// identifier, a number or a quoted string
var graphHeader = regexp.MustCompile(`(?i)\b(?:strict\s+)?digraph(?:\s+(?:[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*|-?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)|"(?:[^"\\]|\\.)*"))?\s*\{`)

// closingBrace returns the index of the brace matching the one at open.
// Braces inside quoted strings do not count.
func closingBrace(code string, open int) (int, bool) {
	depth := 0
	inQuote := false
	for i := open; i < len(code); i++ {
		c := code[i]
		if inQuote {
			switch c {
			case '\\':
				i++
			case '"':
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
