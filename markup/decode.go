package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// xmlDeclEncoding captures the encoding pseudo-attribute of an XML declaration.
var xmlDeclEncoding = regexp.MustCompile(`^\s*<\?xml\b[^>]*?\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// sniffLen bounds how much of the document is searched for a declaration.
const sniffLen = 1024

// ToUTF8 returns data as UTF-8 without a byte order mark.
//
// A UTF-16 BOM selects UTF-16. Input that is already valid UTF-8 is returned
// unchanged whatever it declares. Otherwise the encoding named by the XML
// declaration is used, then <meta charset> sniffing, with windows-1252 as
// the last resort.
func ToUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], nil
	}
	if bytes.HasPrefix(data, bomUTF16BE) || bytes.HasPrefix(data, bomUTF16LE) {
		// ExpectBOM consumes the mark and picks the byte order from it.
		return decode(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data)
	}
	if utf8.Valid(data) {
		return data, nil
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if m := xmlDeclEncoding.FindSubmatch(head); m != nil {
		if enc, err := htmlindex.Get(string(m[1])); err == nil {
			return decode(enc, data)
		}
	}
	enc, _, _ := charset.DetermineEncoding(data, "")
	return decode(enc, data)
}

func decode(enc encoding.Encoding, data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("markup: decode: %w", err)
	}
	return out, nil
}
