// Package aria models WAI-ARIA roles, properties and states as typed values
// and compiles them into selector expressions.
//
//	aria.Compile(aria.RoleButton)        // [role=button],button,input[type=button], ...
//	aria.Compile(aria.Required(true))    // [aria-required=true]
//	aria.Compile(aria.Disabled(true))    // :disabled,[aria-disabled=true]
package aria

// Query is a role, property or state to search for.
type Query interface {
	Selector() string
	isQuery()
}

var (
	_ Query = Role(0)
	_ Query = Property{}
	_ Query = State{}
)

// Compile returns the selector expression for q. It never fails; values are
// not escaped, so strings containing selector syntax produce selectors the
// engine may reject.
func Compile(q Query) string {
	if q == nil {
		return ""
	}
	return q.Selector()
}

// Parse builds a query from a kind ("role", "property" or "state"), an
// attribute name and an optional value. For roles the name is the role.
func Parse(kind, name, value string) (Query, error) {
	switch kind {
	case "role":
		return ParseRole(name)
	case "property", "prop":
		return ParseProperty(name, value)
	case "state":
		return ParseState(name, value)
	}
	return nil, invalid(kind)
}
