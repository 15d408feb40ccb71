package statement

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Registry holds the known statement formats by name.
type Registry struct {
	vendors map[string]*Vendor
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{vendors: make(map[string]*Vendor)}
}

// Register adds a vendor. Panics on duplicate name.
func (r *Registry) Register(v *Vendor) {
	key := strings.ToLower(v.Name)
	if _, ok := r.vendors[key]; ok {
		panic("duplicate vendor: " + key)
	}
	r.vendors[key] = v
	r.order = append(r.order, key)
}

// Get returns the vendor called name, or nil.
func (r *Registry) Get(name string) *Vendor {
	return r.vendors[strings.ToLower(name)]
}

// Names returns vendor names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// DefaultRegistry returns a registry with all built-in formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Venmo())
	r.Register(BECU())
	return r
}

// Detect returns the first registered vendor whose detection strings all
// occur somewhere in pages, or nil.
func (r *Registry) Detect(pages [][]string) *Vendor {
	var needles [][]byte
	var owner []int
	for i, name := range r.order {
		for _, d := range r.vendors[name].Detect {
			needles = append(needles, []byte(d))
			owner = append(owner, i)
		}
	}
	if len(needles) == 0 {
		return nil
	}

	m := ahocorasick.NewMatcher(needles)
	seen := make([]bool, len(needles))
	for _, page := range pages {
		for _, tok := range page {
			for _, hit := range m.Match([]byte(tok)) {
				seen[hit] = true
			}
		}
	}

	found := make([]int, len(r.order))
	for i, ok := range seen {
		if ok {
			found[owner[i]]++
		}
	}
	for i, name := range r.order {
		v := r.vendors[name]
		if len(v.Detect) > 0 && found[i] == len(v.Detect) {
			return v
		}
	}
	return nil
}

// Suggest returns registered names close to a mistyped name.
func (r *Registry) Suggest(name string) []string {
	name = strings.ToLower(name)
	var out []string
	for _, n := range r.order {
		if fuzzy.MatchFold(name, n) || fuzzy.LevenshteinDistance(name, n) <= 2 {
			out = append(out, n)
		}
	}
	return out
}
