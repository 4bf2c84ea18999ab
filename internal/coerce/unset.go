package coerce

type unset struct{}

func (unset) String() string { return "<unset>" }

// Unset marks the absence of a value. Unlike nil, which is an explicit
// null, an Unset variable or field lets a default apply.
var Unset any = unset{}

func IsUnset(v any) bool {
	_, ok := v.(unset)
	return ok
}
