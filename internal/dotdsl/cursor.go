package dotdsl

import (
	"errors"
	"strings"

	"github.com/dotlanth/dotlanth/internal/diagnostics"
)

var (
	errMissingOpenQuote  = errors.New("expected opening `\"`")
	errUnterminatedQuote = errors.New("unterminated string literal")
)

// cursor walks the remaining, already line-trimmed text of a single
// statement, tracking the 1-based byte column of its next unread byte
// so every token it extracts can report a precise span.
type cursor struct {
	text   string
	column int
}

func (c *cursor) empty() bool { return len(c.text) == 0 }

func (c *cursor) skipSpaces() {
	i := 0
	for i < len(c.text) && (c.text[i] == ' ' || c.text[i] == '\t') {
		i++
	}
	c.text = c.text[i:]
	c.column += i
}

// takeWord consumes up to the next whitespace byte (or end of text) and
// returns it with its span. An empty result (word == "") means the
// cursor was already at the end; the returned span still points at the
// cursor's current column with its default length of 1.
func (c *cursor) takeWord(line int) (string, diagnostics.Span) {
	i := 0
	for i < len(c.text) && c.text[i] != ' ' && c.text[i] != '\t' {
		i++
	}
	word := c.text[:i]
	span := diagnostics.NewSpan(line, c.column, i)
	c.text = c.text[i:]
	c.column += i
	return word, span
}

// quotedString parses a `"..."` literal starting at the cursor,
// supporting the escapes `\"`, `\\`, `\n`, `\t`. An unrecognized escape
// `\x` is preserved literally as the two-character sequence `\x`. The
// returned span runs from the opening quote through the closing quote,
// inclusive.
func (c *cursor) quotedString(line int) (string, diagnostics.Span, error) {
	if c.empty() || c.text[0] != '"' {
		return "", diagnostics.NewSpan(line, c.column, 1), errMissingOpenQuote
	}

	startColumn := c.column
	var sb strings.Builder
	i := 1
	closed := false
	for i < len(c.text) {
		ch := c.text[i]
		if ch == '\\' && i+1 < len(c.text) {
			switch c.text[i+1] {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte('\\')
				sb.WriteByte(c.text[i+1])
			}
			i += 2
			continue
		}
		if ch == '"' {
			closed = true
			i++
			break
		}
		sb.WriteByte(ch)
		i++
	}

	if !closed {
		return "", diagnostics.NewSpan(line, startColumn, len(c.text)), errUnterminatedQuote
	}

	span := diagnostics.NewSpan(line, startColumn, i)
	c.text = c.text[i:]
	c.column += i
	return sb.String(), span, nil
}
