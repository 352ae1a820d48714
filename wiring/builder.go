package wiring

// Arg is a constructor argument of a component definition. Exactly one of
// Ref and Value is meaningful, as reported by IsRef.
type Arg struct {
	// Ref is the name of another component.
	Ref string
	// Value is a literal value.
	Value any

	isRef bool
}

// IsRef returns true if the argument refers to another component.
func (a Arg) IsRef() bool {
	return a.isRef
}

// Definition describes how to construct a component.
type Definition struct {
	ComponentType   string
	ConstructorArgs []Arg
}

// DefinitionBuilder assembles a [Definition]. It is not safe for concurrent
// use.
type DefinitionBuilder struct {
	componentType string
	args          []Arg
}

// AddConstructorArgReference appends a reference to the named component.
func (b *DefinitionBuilder) AddConstructorArgReference(ref string) *DefinitionBuilder {
	b.args = append(b.args, Arg{Ref: ref, isRef: true})
	return b
}

// AddConstructorArgValue appends a literal value.
func (b *DefinitionBuilder) AddConstructorArgValue(value any) *DefinitionBuilder {
	b.args = append(b.args, Arg{Value: value})
	return b
}

// Build returns the definition assembled so far. Later changes to the
// builder do not affect returned definitions.
func (b *DefinitionBuilder) Build() Definition {
	args := make([]Arg, len(b.args))
	copy(args, b.args)

	return Definition{
		ComponentType:   b.componentType,
		ConstructorArgs: args,
	}
}
