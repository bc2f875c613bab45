package counter

import "fmt"

// Field declares one member of a Group: an identifier for addressing plus
// the label value exported for it. An empty Value declares an unlabeled
// aggregate field, which accumulates only what callers explicitly add to
// it; there is no automatic roll-up of the other fields.
type Field struct {
	Name  string
	Value string
}

// Group is a fixed, construction-time set of same-kind counters sharing a
// metric name and label key. Typical use is one metric fanned out by a
// dimension, e.g. http_requests_total by method:
//
//	reqs := counter.NewGroup("http_requests_total", "method",
//		func(name string) *counter.Unsigned {
//			return counter.NewUnsigned(counter.WithName(name))
//		},
//		counter.Field{Name: "total"},
//		counter.Field{Name: "get", Value: "GET"},
//		counter.Field{Name: "post", Value: "POST"},
//	)
//	reqs.Get("get").Add(1)
//
// Each field is an independent counter; incrementing one never touches the
// others. The set of fields is immutable after construction.
type Group[T Observable] struct {
	name     string
	labelKey string
	fields   []groupField[T]
	index    map[string]int
}

type groupField[T Observable] struct {
	decl Field
	ctr  T
}

// NewGroup builds one counter per field via build, which receives the
// group's metric name so every field reports under it. Duplicate field
// names are a programming error and panic, construction being the only
// fallible moment of a counter's life.
func NewGroup[T Observable](name, labelKey string, build func(name string) T, fields ...Field) *Group[T] {
	g := &Group[T]{
		name:     name,
		labelKey: labelKey,
		fields:   make([]groupField[T], 0, len(fields)),
		index:    make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, dup := g.index[f.Name]; dup {
			panic(fmt.Sprintf("counter: duplicate group field %q in %q", f.Name, name))
		}
		g.index[f.Name] = len(g.fields)
		g.fields = append(g.fields, groupField[T]{decl: f, ctr: build(name)})
	}
	return g
}

// Name returns the metric name shared by all fields.
func (g *Group[T]) Name() string { return g.name }

// LabelKey returns the label key shared by all labeled fields.
func (g *Group[T]) LabelKey() string { return g.labelKey }

// Get returns the counter addressed by the field identifier.
func (g *Group[T]) Get(field string) (T, bool) {
	if i, ok := g.index[field]; ok {
		return g.fields[i].ctr, true
	}
	var zero T
	return zero, false
}

// MustGet is Get for fields known to exist; it panics otherwise.
func (g *Group[T]) MustGet(field string) T {
	c, ok := g.Get(field)
	if !ok {
		panic(fmt.Sprintf("counter: no field %q in group %q", field, g.name))
	}
	return c
}

// Len returns the number of fields.
func (g *Group[T]) Len() int { return len(g.fields) }

// Expand yields one entry per field in declaration order. Labeled fields
// carry the group's label key with the field's value; aggregate fields
// carry no labels.
func (g *Group[T]) Expand() []Entry {
	out := make([]Entry, 0, len(g.fields))
	for _, f := range g.fields {
		e := Entry{Observable: f.ctr}
		if f.decl.Value != "" {
			e.Labels = []Label{{Key: g.labelKey, Value: f.decl.Value}}
		}
		out = append(out, e)
	}
	return out
}
