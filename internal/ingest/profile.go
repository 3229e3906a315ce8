package ingest

import (
	"fmt"
	"sort"
	"strings"
)

// Profile is a fixed column layout for a known bank export, used when
// header detection is not wanted (e.g. exports with decorative or
// unstable headers).
type Profile struct {
	Name      string
	NumFields int // 0 = any width
	HasHeader bool
	DateCol   int
	DescCol   int
	AmountCol int
}

func (p *Profile) layout(first []string) (layout, error) {
	if p.NumFields > 0 && len(first) != p.NumFields {
		return layout{}, fmt.Errorf("%w: %s export expects %d columns, got %d",
			ErrMissingRequiredColumns, p.Name, p.NumFields, len(first))
	}
	return layout{
		date:         p.DateCol,
		desc:         p.DescCol,
		amount:       p.AmountCol,
		debit:        -1,
		credit:       -1,
		skipFirstRow: p.HasHeader,
	}, nil
}

// Registry holds named bank profiles.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Register adds a profile. Panics on duplicate name.
func (r *Registry) Register(p *Profile) {
	key := strings.ToLower(p.Name)
	if _, ok := r.profiles[key]; ok {
		panic("duplicate profile name: " + key)
	}
	r.profiles[key] = p
}

// Get returns the profile for name, or nil.
func (r *Registry) Get(name string) *Profile {
	return r.profiles[strings.ToLower(name)]
}

// Names returns the registered profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for k := range r.profiles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Profile{
		// Chase checking: Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
		Name:      "chase",
		NumFields: 7,
		HasHeader: true,
		DateCol:   1,
		DescCol:   2,
		AmountCol: 3,
	})
	return r
}
