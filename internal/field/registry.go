package field

import (
	"fmt"
	"sort"
)

type Registry struct {
	builders map[string]func() GraphBuilder
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]func() GraphBuilder)}
	r.Register("brute", func() GraphBuilder { return NewBruteForce() })
	r.Register("grid", func() GraphBuilder { return NewGrid() })
	return r
}

func (r *Registry) Register(name string, fn func() GraphBuilder) {
	r.builders[name] = fn
}

func (r *Registry) GetBuilder(name string) (GraphBuilder, error) {
	fn, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownBuilder, name, r.Names())
	}
	return fn(), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
