package toml

import (
	"errors"
	"fmt"
	"strings"
)

// =========================
// Line Scanning Utilities
// =========================

// quoteState tracks whether a scan position is inside a TOML string so
// structural characters inside strings are never misread. State
// carries across lines for multiline strings.
type quoteState struct {
	inBasic      bool
	inLiteral    bool
	basicMulti   bool
	literalMulti bool
}

// step consumes the token starting at s[i] and reports the next index
// and whether the consumed bytes belong to a string.
func (q *quoteState) step(s string, i int) (next int, inString bool) {
	ch := s[i]
	if q.inBasic {
		if ch == '\\' && i+1 < len(s) {
			return i + 2, true
		}
		if q.basicMulti {
			if strings.HasPrefix(s[i:], `"""`) {
				q.inBasic, q.basicMulti = false, false
				return i + 3, true
			}
		} else if ch == '"' {
			q.inBasic = false
			return i + 1, true
		}
		return i + 1, true
	}
	if q.inLiteral {
		if q.literalMulti {
			if strings.HasPrefix(s[i:], `'''`) {
				q.inLiteral, q.literalMulti = false, false
				return i + 3, true
			}
		} else if ch == '\'' {
			q.inLiteral = false
			return i + 1, true
		}
		return i + 1, true
	}
	if ch == '"' {
		if strings.HasPrefix(s[i:], `"""`) {
			q.inBasic, q.basicMulti = true, true
			return i + 3, true
		}
		q.inBasic = true
		return i + 1, true
	}
	if ch == '\'' {
		if strings.HasPrefix(s[i:], `'''`) {
			q.inLiteral, q.literalMulti = true, true
			return i + 3, true
		}
		q.inLiteral = true
		return i + 1, true
	}
	return i + 1, false
}

// stripComment removes a trailing # comment, leaving string contents
// intact.
func stripComment(s string) string {
	var q quoteState
	for i := 0; i < len(s); {
		next, inStr := q.step(s, i)
		if !inStr && s[i] == '#' {
			return s[:i]
		}
		i = next
	}
	return s
}

// findUnquotedEqual returns the index of the first = outside a string,
// or -1.
func findUnquotedEqual(s string) int {
	var q quoteState
	for i := 0; i < len(s); {
		next, inStr := q.step(s, i)
		if !inStr && s[i] == '=' {
			return i
		}
		i = next
	}
	return -1
}

// stripAndDepth removes an unquoted # comment from line and updates
// the bracket depth, with string state carried across lines.
func stripAndDepth(q *quoteState, line string, depth int) (string, int) {
	for i := 0; i < len(line); {
		next, inStr := q.step(line, i)
		if !inStr {
			switch line[i] {
			case '#':
				return line[:i], depth
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
		i = next
	}
	return line, depth
}

// segment is a piece of a compound literal together with its byte
// offset in the enclosing text.
type segment struct {
	text string
	off  int
}

// trim drops surrounding whitespace, adjusting the offset.
func (sg segment) trim() segment {
	t := strings.TrimLeft(sg.text, " \t\n")
	sg.off += len(sg.text) - len(t)
	sg.text = strings.TrimRight(t, " \t\n")
	return sg
}

// splitTopLevel splits s on sep at bracket depth zero outside strings,
// keeping the byte offset of every piece.
func splitTopLevel(s string, sep byte) []segment {
	var parts []segment
	var q quoteState
	depth := 0
	start := 0
	for i := 0; i < len(s); {
		next, inStr := q.step(s, i)
		if !inStr {
			switch s[i] {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			case sep:
				if depth == 0 {
					parts = append(parts, segment{text: s[start:i], off: start})
					start = i + 1
				}
			}
		}
		i = next
	}
	return append(parts, segment{text: s[start:], off: start})
}

// advance moves p across s, tracking newlines.
func advance(p Position, s string) Position {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			p.Line++
			p.Col = 1
		} else {
			p.Col++
		}
	}
	return p
}

// splitKey splits a dotted key into segments, resolving bare, basic
// and literal quoting. base is the position of text[0] in the source.
func splitKey(text string, base Position) (Key, error) {
	var key Key
	i := 0
	for {
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if i >= len(text) {
			return nil, errors.New("empty key segment")
		}
		start := i
		var name string
		switch text[i] {
		case '"':
			j := i + 1
			for j < len(text) && text[j] != '"' {
				if text[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(text) {
				return nil, errors.New("unterminated quoted key")
			}
			decoded, err := decodeBasicString(text[i+1:j], false)
			if err != nil {
				return nil, err
			}
			name = decoded
			i = j + 1
		case '\'':
			j := strings.IndexByte(text[i+1:], '\'')
			if j < 0 {
				return nil, errors.New("unterminated quoted key")
			}
			name = text[i+1 : i+1+j]
			i = i + 1 + j + 1
		default:
			j := i
			for j < len(text) && text[j] != '.' && text[j] != ' ' && text[j] != '\t' {
				j++
			}
			name = text[i:j]
			i = j
		}
		if name == "" && text[start] != '"' && text[start] != '\'' {
			return nil, errors.New("empty key segment")
		}
		key = append(key, KeyPart{Pos: advance(base, text[:start]), Name: name})
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if i >= len(text) {
			return key, nil
		}
		if text[i] != '.' {
			return nil, fmt.Errorf("invalid key %q", text)
		}
		i++
	}
}
