package markup

import "strings"

// textBuilder accumulates extracted text one line at a time.
type textBuilder struct {
	buf []byte
	pre int // depth of open <pre> elements
}

func (b *textBuilder) trimTrailingSpaces() {
	for len(b.buf) > 0 && b.buf[len(b.buf)-1] == ' ' {
		b.buf = b.buf[:len(b.buf)-1]
	}
}

func (b *textBuilder) atLineStart() bool {
	return len(b.buf) == 0 || b.buf[len(b.buf)-1] == '\n'
}

// newline ends the current line unless it is already empty.
func (b *textBuilder) newline() {
	b.trimTrailingSpaces()
	if !b.atLineStart() {
		b.buf = append(b.buf, '\n')
	}
}

// lineBreak always ends the line, so consecutive <br> leave blank lines.
func (b *textBuilder) lineBreak() {
	b.trimTrailingSpaces()
	if len(b.buf) > 0 {
		b.buf = append(b.buf, '\n')
	}
}

func (b *textBuilder) text(s string) {
	if b.pre > 0 {
		b.buf = append(b.buf, strings.ReplaceAll(s, "\r\n", "\n")...)
		return
	}
	s = collapseWhitespace(s)
	if b.atLineStart() {
		s = strings.TrimLeft(s, " ")
	}
	b.buf = append(b.buf, s...)
}

func (b *textBuilder) String() string {
	return strings.TrimSpace(string(b.buf))
}

// isHTMLSpace reports the ASCII whitespace HTML treats as
// inter-element whitespace. NBSP and other Unicode spaces are content.
func isHTMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// collapseWhitespace replaces each run of HTML whitespace with one space.
// Leading and trailing runs survive as a single space so inline elements
// keep their separation ("<b>a</b> b").
func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if isHTMLSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			sb.WriteByte(' ')
			inSpace = false
		}
		sb.WriteRune(r)
	}
	if inSpace {
		sb.WriteByte(' ')
	}
	return sb.String()
}
