package backend

import "fmt"

// LibraryProbe reports whether the native client for a kind can be used.
type LibraryProbe func(Kind) bool

// Registry is the read-only catalogue of backend templates for one process.
type Registry struct {
	templates map[Kind]Template
}

// NewRegistry builds the catalogue, asking probe once per kind. A nil probe marks every client unavailable.
func NewRegistry(probe LibraryProbe) *Registry {
	r := &Registry{templates: make(map[Kind]Template, len(templates))}
	for kind, tmpl := range templates {
		tmpl = tmpl.clone()
		tmpl.LibraryAvailable = probe != nil && probe(kind)
		r.templates[kind] = tmpl
	}
	return r
}

// Lookup returns the template for kind or ErrUnknownBackend.
func (r *Registry) Lookup(kind Kind) (Template, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownBackend, string(kind))
	}
	return tmpl.clone(), nil
}

// All returns every template in display order.
func (r *Registry) All() []Template {
	out := make([]Template, 0, len(r.templates))
	for _, k := range Kinds() {
		out = append(out, r.templates[k].clone())
	}
	return out
}

func (t Template) clone() Template {
	t.SampleTables = append([]string(nil), t.SampleTables...)
	return t
}
