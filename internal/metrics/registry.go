package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/plexus/internal/field"
)

var constructors = map[string]func() field.Metric{
	"mean_edges": func() field.Metric { return NewMeanEdges() },
	"mean_alpha": func() field.Metric { return NewMeanAlpha() },
	"max_degree": func() field.Metric { return NewMaxDegree() },
	"escapes":    func() field.Metric { return NewEscapes() },
}

// New returns a fresh metric by name.
func New(name string) (field.Metric, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns one fresh instance of every metric.
func All() []field.Metric {
	names := Names()
	ms := make([]field.Metric, len(names))
	for i, name := range names {
		ms[i] = constructors[name]()
	}
	return ms
}
