package epub

import (
	"slices"
	"strings"
)

// NewItem builds an in-memory Item whose kind is derived from mediaType.
// It is useful for feeding content that did not come from an archive through
// code that consumes Items.
func NewItem(name, mediaType string, data []byte) Item {
	return Item{
		ID:        name,
		Name:      name,
		Path:      name,
		MediaType: mediaType,
		Kind:      kindOf(mediaType, nil),
		Linear:    true,
		data:      data,
	}
}

// Content returns the raw bytes of the item. A leading UTF-8 BOM is stripped.
func (it Item) Content() ([]byte, error) {
	if it.data != nil {
		return stripBOM(it.data), nil
	}
	if it.book == nil {
		return nil, ErrInvalidItem
	}
	data, err := it.book.readFile(it.Path)
	if err != nil {
		return nil, err
	}
	return stripBOM(data), nil
}

// HasProperty reports whether the manifest declared the given property.
func (it Item) HasProperty(p string) bool {
	return slices.Contains(it.Properties, p)
}

// kindOf maps a manifest media type and property list to an ItemKind.
// The ePub 3 nav document is XHTML and is reported as a document; callers
// that want to leave it out check HasProperty("nav"). Only the ePub 2 NCX
// is ItemNavigation.
func kindOf(mediaType string, properties []string) ItemKind {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}

	switch {
	case mt == "application/x-dtbncx+xml":
		return ItemNavigation
	case mt == "application/xhtml+xml", mt == "text/html", mt == "application/x-dtbook+xml":
		return ItemDocument
	case mt == "text/css":
		return ItemStyle
	case strings.HasSuffix(mt, "javascript"), mt == "application/ecmascript":
		return ItemScript
	case strings.HasPrefix(mt, "image/"):
		if slices.Contains(properties, "cover-image") {
			return ItemCover
		}
		return ItemImage
	case strings.HasPrefix(mt, "font/"),
		strings.HasPrefix(mt, "application/font-"),
		strings.HasPrefix(mt, "application/x-font-"),
		mt == "application/vnd.ms-opentype":
		return ItemFont
	case strings.HasPrefix(mt, "audio/"):
		return ItemAudio
	case strings.HasPrefix(mt, "video/"):
		return ItemVideo
	}
	return ItemUnknown
}
