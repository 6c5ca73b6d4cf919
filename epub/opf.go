package epub

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// opfPackage is the root <package> element of the OPF document.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	Titles       []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creators     []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Languages    []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ language"`
	Identifiers  []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ identifier"`
	Publishers   []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ publisher"`
	Dates        []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ date"`
	Descriptions []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ description"`
	Subjects     []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ subject"`
	Rights       []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ rights"`
	Metas        []opfMeta      `xml:"meta"`
}

// opfDCElement is a Dublin Core element. ePub 2 puts file-as and role on
// the element itself; ePub 3 moves them to <meta refines="#id">.
type opfDCElement struct {
	Value  string `xml:",chardata"`
	ID     string `xml:"id,attr"`
	FileAs string `xml:"file-as,attr"`
	Role   string `xml:"role,attr"`
}

type opfMeta struct {
	Name     string `xml:"name,attr"`
	Content  string `xml:"content,attr"`
	Property string `xml:"property,attr"`
	Refines  string `xml:"refines,attr"`
	Value    string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfSpine struct {
	Toc      string            `xml:"toc,attr"`
	ItemRefs []opfSpineItemRef `xml:"itemref"`
}

type opfSpineItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// htmlEntities maps the HTML named entities commonly found in sloppy OPF
// files to numeric references, since encoding/xml only knows the five XML ones.
var htmlEntities = map[string]string{
	"nbsp": "&#160;", "mdash": "&#8212;", "ndash": "&#8211;", "hellip": "&#8230;",
	"lsquo": "&#8216;", "rsquo": "&#8217;", "ldquo": "&#8220;", "rdquo": "&#8221;",
	"copy": "&#169;", "reg": "&#174;", "trade": "&#8482;",
	"bull": "&#8226;", "middot": "&#183;",
	"eacute": "&#233;", "egrave": "&#232;", "ecirc": "&#234;", "euml": "&#235;",
	"aacute": "&#225;", "agrave": "&#224;", "acirc": "&#226;", "auml": "&#228;",
	"iacute": "&#237;", "iuml": "&#239;", "oacute": "&#243;", "ouml": "&#246;",
	"uacute": "&#250;", "uuml": "&#252;", "ntilde": "&#241;", "ccedil": "&#231;",
	"laquo": "&#171;", "raquo": "&#187;", "deg": "&#176;", "times": "&#215;",
}

var htmlEntityPattern = regexp.MustCompile(`(?i)&([a-z]+);`)

// replaceHTMLEntities rewrites known HTML named entities to numeric
// references, matching names case-insensitively. Unknown names, including
// the XML built-ins, are left alone.
func replaceHTMLEntities(data []byte) []byte {
	return htmlEntityPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		name := strings.ToLower(string(m[1 : len(m)-1]))
		if ref, ok := htmlEntities[name]; ok {
			return []byte(ref)
		}
		return m
	})
}

// parseOPF decodes the package document.
func parseOPF(data []byte) (*opfPackage, error) {
	data = replaceHTMLEntities(stripBOM(data))

	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("epub: parse OPF: %w", err)
	}
	if pkg.Version == "" {
		pkg.Version = "2.0"
	}
	return &pkg, nil
}

// buildSpine keeps itemref order; linear defaults to yes.
func buildSpine(spine opfSpine) []spineItem {
	items := make([]spineItem, 0, len(spine.ItemRefs))
	for _, ref := range spine.ItemRefs {
		id := strings.TrimSpace(ref.IDRef)
		if id == "" {
			continue
		}
		items = append(items, spineItem{
			IDRef:  id,
			Linear: !strings.EqualFold(strings.TrimSpace(ref.Linear), "no"),
		})
	}
	return items
}
