package gen

// Shape is an auxiliary record type derived from a record for one
// operation. Its fields keep the Go names, types and declaration order of
// the record fields they mirror.
type Shape struct {
	// Name of the generated type.
	Name string
	// Fields of the shape. Empty for a unit shape.
	Fields []*ShapeField
}

// ShapeField is a field of a shape.
type ShapeField struct {
	*Field
	// Wrapped fields are typed gremlin.Defaultable[T] instead of T.
	Wrapped bool
}

// Unit reports whether the shape has no fields.
func (s *Shape) Unit() bool { return len(s.Fields) == 0 }

// InsertableShape returns the insert shape: every field that is not
// generated, with optional fields wrapped in the tri-state default type.
func (t *Type) InsertableShape() *Shape {
	s := &Shape{Name: t.InsertableName()}
	for _, f := range t.InsertFields() {
		s.Fields = append(s.Fields, &ShapeField{Field: f, Wrapped: f.Optional()})
	}
	return s
}

// UpdatableShape returns the update shape: keys and settable fields. It
// reports false when no update is generated for the record.
func (t *Type) UpdatableShape() (*Shape, bool) {
	if _, ok := t.UpdatePlan(); !ok {
		return nil, false
	}
	return t.shape(t.UpdatableName(), t.UpdateFields()), true
}

// PkShape returns the key shape: the key fields, in declaration order.
func (t *Type) PkShape() *Shape {
	return t.shape(t.PkName(), t.Keys())
}

func (t *Type) shape(name string, fields []*Field) *Shape {
	s := &Shape{Name: name, Fields: make([]*ShapeField, len(fields))}
	for i, f := range fields {
		s.Fields[i] = &ShapeField{Field: f}
	}
	return s
}

// Receiver returns the receiver name of the shape type.
func (s *Shape) Receiver() string { return receiver(s.Name) }
