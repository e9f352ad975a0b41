package status

import "shoporder/internal/pkg/errs"

// Collection is a named set of status codes used to filter orders, for
// example "outstanding" or "dispatch eligible". Collections never take part
// in the transition relation; they exist only so callers can ask "is this
// order in one of these states" without hardcoding code lists everywhere.
type Collection struct {
	name  string
	codes []string
}

// NewCollection creates a named collection of status codes.
func NewCollection(name string, codes ...string) (Collection, error) {
	if name == "" {
		return Collection{}, errs.NewValueIsRequiredError("name")
	}
	if len(codes) == 0 {
		return Collection{}, errs.NewValueIsRequiredError("codes")
	}

	return Collection{name: name, codes: append([]string(nil), codes...)}, nil
}

// Name returns the collection name.
func (c Collection) Name() string {
	return c.name
}

// Codes returns a copy of the member codes.
func (c Collection) Codes() []string {
	return append([]string(nil), c.codes...)
}

// Contains reports whether the given code is a member of the collection.
func (c Collection) Contains(code string) bool {
	for _, candidate := range c.codes {
		if candidate == code {
			return true
		}
	}
	return false
}
