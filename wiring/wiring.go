// Package wiring helps configuration parsers build definitions of components
// that need the shared reactive execution environment.
//
// Components refer to the environment by name. If the configuration does not
// name one via an "env" attribute, the global environment registered as
// [DefaultEnvironmentRef] is used:
//
//	<reactor-source env="customEnv" .../>   -> reference "customEnv"
//	<reactor-source .../>                   -> reference "reactorEnv"
package wiring

import "strings"

// DefaultEnvironmentRef is the name of the global execution environment.
const DefaultEnvironmentRef = "reactorEnv"

// EnvironmentAttribute is the attribute naming the environment to use.
const EnvironmentAttribute = "env"

// ResolveEnvironmentRef returns explicit if it contains text, otherwise
// [DefaultEnvironmentRef].
func ResolveEnvironmentRef(explicit string) string {
	if strings.TrimSpace(explicit) == "" {
		return DefaultEnvironmentRef
	}

	return explicit
}

// Element is a configuration element that attributes can be read from.
type Element interface {
	// Attribute returns the value of the named attribute, or an empty string
	// if it is not set.
	Attribute(name string) string
}

// NewDefinitionBuilder creates a builder for componentType whose first
// constructor argument is a reference to the environment named by the "env"
// attribute of element, or the default environment if it is not set. A nil
// element uses the default environment.
func NewDefinitionBuilder(componentType string, element Element) *DefinitionBuilder {
	explicit := ""
	if element != nil {
		explicit = element.Attribute(EnvironmentAttribute)
	}

	builder := &DefinitionBuilder{componentType: componentType}
	return builder.AddConstructorArgReference(ResolveEnvironmentRef(explicit))
}
