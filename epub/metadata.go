package epub

import (
	"sort"
	"strconv"
	"strings"
)

// extractMetadata flattens the OPF metadata block into Metadata.
func extractMetadata(pkg *opfPackage) Metadata {
	om := &pkg.Metadata
	refines := buildRefinesMap(om.Metas)

	return Metadata{
		Version:     pkg.Version,
		Title:       firstValue(om.Titles),
		Titles:      orderedTitles(om.Titles, refines),
		Authors:     creators(om.Creators, refines),
		Language:    allValues(om.Languages),
		Identifiers: allValues(om.Identifiers),
		Publisher:   firstValue(om.Publishers),
		Date:        firstValue(om.Dates),
		Description: firstValue(om.Descriptions),
		Subjects:    allValues(om.Subjects),
		Rights:      firstValue(om.Rights),
	}
}

// lookup returns the first non-empty value of f.
func (md Metadata) lookup(f Field) (string, bool) {
	var v string
	switch f {
	case FieldTitle:
		v = md.Title
	case FieldCreator:
		if len(md.Authors) > 0 {
			v = md.Authors[0].Name
		}
	case FieldLanguage:
		v = first(md.Language)
	case FieldPublisher:
		v = md.Publisher
	case FieldIdentifier:
		v = first(md.Identifiers)
	case FieldDate:
		v = md.Date
	case FieldDescription:
		v = md.Description
	case FieldSubject:
		v = first(md.Subjects)
	case FieldRights:
		v = md.Rights
	}
	return v, v != ""
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstValue(elems []opfDCElement) string {
	for _, e := range elems {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

func allValues(elems []opfDCElement) []string {
	var out []string
	for _, e := range elems {
		if v := strings.TrimSpace(e.Value); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// buildRefinesMap groups ePub 3 <meta refines="#id"> elements by the
// referenced id (without the "#").
func buildRefinesMap(metas []opfMeta) map[string][]opfMeta {
	m := make(map[string][]opfMeta)
	for _, meta := range metas {
		id, ok := strings.CutPrefix(strings.TrimSpace(meta.Refines), "#")
		if !ok || id == "" {
			continue
		}
		m[id] = append(m[id], meta)
	}
	return m
}

func refinedValue(refines map[string][]opfMeta, id, property string) string {
	if id == "" {
		return ""
	}
	for _, m := range refines[id] {
		if m.Property == property {
			if v := strings.TrimSpace(m.Value); v != "" {
				return v
			}
		}
	}
	return ""
}

// orderedTitles returns non-empty titles, sorted by ePub 3 display-seq when
// any title carries one. Titles without a sequence keep document order
// after the sequenced ones.
func orderedTitles(titles []opfDCElement, refines map[string][]opfMeta) []string {
	type entry struct {
		value string
		seq   int
	}
	var entries []entry
	sequenced := false
	for _, t := range titles {
		v := strings.TrimSpace(t.Value)
		if v == "" {
			continue
		}
		e := entry{value: v}
		if n, err := strconv.Atoi(refinedValue(refines, t.ID, "display-seq")); err == nil && n > 0 {
			e.seq = n
			sequenced = true
		}
		entries = append(entries, e)
	}
	if sequenced {
		sort.SliceStable(entries, func(i, j int) bool {
			si, sj := entries[i].seq, entries[j].seq
			switch {
			case si == 0:
				return false
			case sj == 0:
				return true
			}
			return si < sj
		})
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// creators extracts dc:creator entries. ePub 2 attributes win over ePub 3
// refinements when both are present.
func creators(elems []opfDCElement, refines map[string][]opfMeta) []Author {
	var authors []Author
	for _, c := range elems {
		name := strings.TrimSpace(c.Value)
		if name == "" {
			continue
		}
		a := Author{Name: name, FileAs: c.FileAs, Role: c.Role}
		if a.FileAs == "" {
			a.FileAs = refinedValue(refines, c.ID, "file-as")
		}
		if a.Role == "" {
			a.Role = refinedValue(refines, c.ID, "role")
		}
		authors = append(authors, a)
	}
	return authors
}
