package record

// Kind classifies a declared field.
type Kind int

const (
	// KindColumn is a plain value stored on the record itself.
	KindColumn Kind = iota
	// KindRelation is an association to zero or more other records.
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// Mapping is the flattened form of a record, ready for JSON encoding.
type Mapping map[string]any

// Mapper is implemented by every record that can be flattened into a Mapping.
type Mapper interface {
	ToMap(includeRelationships bool) Mapping
}

// Field describes one declared field of T together with its accessor.
// Exactly one of Value or Related is set, depending on Kind.
type Field[T any] struct {
	Name    string
	Kind    Kind
	Value   func(*T) any
	Related func(*T) []Mapper
}

// Column declares a plain field.
func Column[T any](name string, value func(*T) any) Field[T] {
	return Field[T]{Name: name, Kind: KindColumn, Value: value}
}

// HasMany declares a relation field whose elements are *R records. Nil
// elements are skipped.
func HasMany[T any, R any, P interface {
	*R
	Mapper
}](name string, related func(*T) []P) Field[T] {
	return Field[T]{
		Name: name,
		Kind: KindRelation,
		Related: func(rec *T) []Mapper {
			items := related(rec)
			out := make([]Mapper, 0, len(items))
			for _, item := range items {
				if item == nil {
					continue
				}
				out = append(out, item)
			}
			return out
		},
	}
}

// Optional dereferences p, returning an untyped nil for absent values so
// that Mapping entries compare equal to nil.
func Optional[V any](p *V) any {
	if p == nil {
		return nil
	}
	return *p
}

// Schema is the ordered field list declared for a record type.
type Schema[T any] []Field[T]

// Map flattens rec. Relation fields are expanded one level deep when
// includeRelationships is set; related records never expand their own relations.
func (s Schema[T]) Map(rec *T, includeRelationships bool) Mapping {
	out := make(Mapping, len(s))
	for _, f := range s {
		switch f.Kind {
		case KindColumn:
			out[f.Name] = f.Value(rec)
		case KindRelation:
			if !includeRelationships {
				continue
			}
			related := f.Related(rec)
			items := make([]Mapping, 0, len(related))
			for _, r := range related {
				items = append(items, r.ToMap(false))
			}
			out[f.Name] = items
		}
	}
	return out
}

// Descriptor lists the declared field names by kind, in declaration order.
type Descriptor struct {
	Columns   []string
	Relations []string
}

// Described is implemented by records that expose their declared fields.
type Described interface {
	Descriptor() Descriptor
}

// Descriptor returns the field names declared by s.
func (s Schema[T]) Descriptor() Descriptor {
	var d Descriptor
	for _, f := range s {
		if f.Kind == KindRelation {
			d.Relations = append(d.Relations, f.Name)
			continue
		}
		d.Columns = append(d.Columns, f.Name)
	}
	return d
}
