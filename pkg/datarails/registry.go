package datarails

import (
	"github.com/askiada/go-datarails/internal/store"
)

// Registry maps step names to their definitions, so that a pipeline can be
// assembled from a list of names such as a manifest.
type Registry struct {
	defs *store.Ordered[Definition]
}

func NewRegistry() *Registry {
	return &Registry{
		defs: store.NewOrdered[Definition](),
	}
}

// Register adds definitions. Names must be non-empty and unique within the
// registry.
func (r *Registry) Register(defs ...Definition) error {
	for _, def := range defs {
		if def.Name == "" {
			return configErrorf("", "step name must be set")
		}
		if def.New == nil {
			return configErrorf(def.Name, "constructor must be set")
		}
		if r.defs.Has(def.Name) {
			return configErrorf(def.Name, "already registered")
		}

		r.defs.Put(def.Name, def)
	}

	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, error) {
	def, ok := r.defs.Get(name)
	if !ok {
		return Definition{}, configErrorf(name, "unknown step")
	}

	return def, nil
}

// Resolve looks up every name, keeping their order.
func (r *Registry) Resolve(names []string) ([]Definition, error) {
	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		def, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return r.defs.Keys()
}
