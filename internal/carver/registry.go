package carver

import (
	"fmt"
	"sort"
)

// Registry maps carver names to constructors.
type Registry struct {
	carvers map[string]func() Carver
}

func NewRegistry() *Registry {
	r := &Registry{carvers: make(map[string]func() Carver)}
	r.carvers["prim"] = func() Carver { return NewPrim() }
	r.carvers["backtracker"] = func() Carver { return NewBacktracker() }
	return r
}

func (r *Registry) Get(name string) (Carver, error) {
	fn, ok := r.carvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown carver: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.carvers))
	for name := range r.carvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
