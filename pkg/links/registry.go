// Package links keeps the link definitions of a document.
package links

// Definition is the target of a link id.
type Definition struct {
	URL   string
	Title string
}

// Registry maps link ids to their definitions. Ids match exactly; a later
// registration replaces an earlier one. A Registry is owned by a single
// parse and is not safe for concurrent use.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register records url and an optional title under id.
func (r *Registry) Register(id, url, title string) {
	if _, ok := r.defs[id]; !ok {
		r.order = append(r.order, id)
	}
	r.defs[id] = Definition{URL: url, Title: title}
}

// Resolve looks up id.
func (r *Registry) Resolve(id string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.defs[id]
	return def, ok
}

// IDs returns the registered ids in first-registration order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Len returns the number of registered ids.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
