package statement

import (
	"cmp"
	"slices"

	"github.com/cloudflare/ahocorasick"

	"github.com/MikeTheGreat/PersonalTool/internal/model"
)

type markerKind uint8

const (
	markerDetails markerKind = iota
	markerContinued
	markerEnd
	markerSection
)

type marker struct {
	kind     markerKind
	text     string
	category model.Category
}

// hits is the set of markers found in one token.
type hits struct {
	details   bool
	continued bool
	end       bool
	// sections are the matching categories in the vendor's section order.
	sections []model.Category
}

// otherSection returns the first matched category that is not current.
func (h hits) otherSection(current model.Category) (model.Category, bool) {
	for _, c := range h.sections {
		if c != current {
			return c, true
		}
	}
	return model.CategoryUnknown, false
}

// markerSet recognizes a vendor's structural markers in a token. Substring
// markers share one Aho-Corasick automaton; exact markers are compared
// directly. A markerSet is not safe for concurrent use.
type markerSet struct {
	contains []marker
	exact    []marker
	matcher  *ahocorasick.Matcher
	order    map[model.Category]int
}

func newMarkerSet(v *Vendor) *markerSet {
	ms := &markerSet{order: make(map[model.Category]int)}
	add := func(m marker, mode MatchMode) {
		if m.text == "" {
			return
		}
		if mode == MatchExact {
			ms.exact = append(ms.exact, m)
			return
		}
		ms.contains = append(ms.contains, m)
	}

	add(marker{kind: markerDetails, text: v.DetailsMarker}, MatchContains)
	add(marker{kind: markerContinued, text: v.ContinuedMarker}, MatchContains)
	add(marker{kind: markerEnd, text: v.EndMarker}, MatchContains)
	for i, s := range v.Sections {
		ms.order[s.Category] = i
		add(marker{kind: markerSection, text: s.Marker, category: s.Category}, s.Match)
	}

	dict := make([][]byte, len(ms.contains))
	for i, m := range ms.contains {
		dict[i] = []byte(m.text)
	}
	ms.matcher = ahocorasick.NewMatcher(dict)
	return ms
}

func (ms *markerSet) match(token string) hits {
	var h hits
	record := func(m marker) {
		switch m.kind {
		case markerDetails:
			h.details = true
		case markerContinued:
			h.continued = true
		case markerEnd:
			h.end = true
		case markerSection:
			h.sections = append(h.sections, m.category)
		}
	}

	if len(ms.contains) > 0 {
		for _, i := range ms.matcher.Match([]byte(token)) {
			record(ms.contains[i])
		}
	}
	for _, m := range ms.exact {
		if token == m.text {
			record(m)
		}
	}

	slices.SortFunc(h.sections, func(a, b model.Category) int {
		return cmp.Compare(ms.order[a], ms.order[b])
	})
	return h
}
