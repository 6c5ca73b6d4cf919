// Package markup turns XHTML fragments into plain text.
//
// Extraction is best-effort: the x/net/html tokenizer recovers from
// malformed markup the way a browser would, so broken documents yield
// degraded text rather than an error.
package markup

import (
	"bytes"
	"errors"
	"io"
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockTags start a new line when opened or closed.
var blockTags = map[atom.Atom]bool{
	atom.Title:      true,
	atom.P:          true,
	atom.Div:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Dd:         true,
	atom.Tr:         true,
	atom.Table:      true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.Hr:         true,
	atom.Section:    true,
	atom.Article:    true,
	atom.Header:     true,
	atom.Footer:     true,
	atom.Aside:      true,
	atom.Nav:        true,
	atom.Figure:     true,
	atom.Figcaption: true,
}

// skipTags hold content that is never rendered as text.
var skipTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
}

// reparseTags are read by the tokenizer as one opaque text token, but
// their content is ordinary markup that should contribute its text.
var reparseTags = map[atom.Atom]bool{
	atom.Noscript:  true,
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Xmp:       true,
	atom.Textarea:  true,
	atom.Plaintext: true,
}

// The HTML tokenizer switches to raw-text mode after these start tags, so
// an XHTML self-closing form such as <script src="x.js"/> would swallow
// the rest of the document. Expanding it to an explicit pair avoids that.
var selfClosingRawTextPattern = regexp.MustCompile(`(?is)<(script|style|title|textarea|iframe|noscript|noembed|noframes|xmp)\b([^>]*?)\s*/>`)

func expandSelfClosingRawText(data []byte) []byte {
	if !selfClosingRawTextPattern.Match(data) {
		return data
	}
	return selfClosingRawTextPattern.ReplaceAll(data, []byte(`<$1$2></$1>`))
}

// Text extracts the visible text of an XHTML fragment. Block-level
// elements and <br> produce line breaks, script and style content is
// dropped, whitespace inside text collapses to single spaces except inside
// <pre>. The input is decoded to UTF-8 first (see ToUTF8).
//
// An error is returned only when the tokenizer fails for a reason other
// than reaching the end of input.
func Text(data []byte) (string, error) {
	data, err := ToUTF8(data)
	if err != nil {
		return "", err
	}
	var tb textBuilder
	if err := walk(expandSelfClosingRawText(data), &tb); err != nil {
		return "", err
	}
	return tb.String(), nil
}

// walk tokenizes data and appends its text to tb. The content of
// reparseTags elements is walked again as markup.
func walk(data []byte, tb *textBuilder) error {
	z := html.NewTokenizer(bytes.NewReader(data))
	skip := 0
	reparse := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			return nil

		case html.StartTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skipTags[a] {
				skip++
				continue
			}
			if skip > 0 {
				continue
			}
			if reparseTags[a] {
				reparse++
			}
			switch {
			case a == atom.Br:
				tb.lineBreak()
			case blockTags[a]:
				tb.newline()
			}
			if a == atom.Pre {
				tb.pre++
			}

		case html.SelfClosingTagToken:
			if skip > 0 {
				continue
			}
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Br:
				tb.lineBreak()
			case blockTags[a]:
				tb.newline()
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skipTags[a] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 {
				continue
			}
			if reparseTags[a] && reparse > 0 {
				reparse--
			}
			if a == atom.Pre && tb.pre > 0 {
				tb.pre--
			}
			if blockTags[a] {
				tb.newline()
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			if reparse > 0 {
				// Raw is only valid until the next call to Next.
				inner := append([]byte(nil), z.Raw()...)
				if err := walk(inner, tb); err != nil {
					return err
				}
				continue
			}
			tb.text(string(z.Text()))
		}
	}
}
