package status

import (
	"errors"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/pkg/errs"
)

// ErrStatusIsNotConstructed is returned when a Status instance was not created
// through the NewStatus or RestoreStatus factory methods.
var ErrStatusIsNotConstructed = errors.New("Status must be created via NewStatus or RestoreStatus")

// Well-known status codes. These are defaults, not an enumeration: statuses
// are data rows and operators may add arbitrary codes at runtime. The
// transition engine creates unknown codes on demand (with a warning), so
// nothing in the core may assume this list is complete.
const (
	CodeNew           = "new"
	CodePaid          = "paid"
	CodePreparing     = "preparing"
	CodeSent          = "sent"
	CodeDone          = "done"
	CodeStorno        = "storno"
	CodePaymentFailed = "payment-failed"
	CodeReturned      = "returned"
)

// Status is an order lifecycle state. It is an entity, not an enum constant:
// the set of statuses is open-ended and stored in the status registry.
//
// Status carries:
//   - a stable unique code used as the reference key everywhere in the core
//   - display labels (admin label, internal label, customer-facing label)
//   - an ordering position and a display color
//   - an optional one-hop redirect to another status code
//
// A redirect means "whenever an order is moved to this status, record it in
// history but immediately land the order on the redirect target". Only one
// hop is ever followed; redirect chains are not resolved further.
type Status struct {
	id            kernel.UUID
	code          string
	label         string
	internalLabel string
	publicLabel   string
	position      int
	color         string
	redirectTo    string

	isConstructed bool
}

// NewStatus creates a new Status with the minimal required fields.
// Label falls back to the code when empty, which is exactly what the lenient
// find-or-create path of the transition engine relies on.
func NewStatus(id kernel.UUID, code string, label string, position int) (*Status, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if label == "" {
		label = code
	}

	return &Status{
		id:            id,
		code:          code,
		label:         label,
		position:      position,
		isConstructed: true,
	}, nil
}

// RestoreStatus reconstructs a Status from persistence with all fields.
func RestoreStatus(
	id kernel.UUID,
	code string,
	label string,
	internalLabel string,
	publicLabel string,
	position int,
	color string,
	redirectTo string,
) (*Status, error) {
	st, err := NewStatus(id, code, label, position)
	if err != nil {
		return nil, err
	}

	st.internalLabel = internalLabel
	st.publicLabel = publicLabel
	st.color = color
	if err := st.SetRedirect(redirectTo); err != nil {
		return nil, err
	}

	return st, nil
}

// Validate ensures the Status instance was properly constructed.
func (s *Status) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStatusIsNotConstructed
	}
	return nil
}

// ID returns the status identifier.
func (s *Status) ID() kernel.UUID {
	return s.id
}

// Code returns the stable unique code of the status.
func (s *Status) Code() string {
	return s.code
}

// Label returns the admin-facing label.
func (s *Status) Label() string {
	return s.label
}

// InternalLabel returns the internal label, falling back to the label.
func (s *Status) InternalLabel() string {
	if s.internalLabel == "" {
		return s.label
	}
	return s.internalLabel
}

// PublicLabel returns the customer-facing label, falling back to the label.
func (s *Status) PublicLabel() string {
	if s.publicLabel == "" {
		return s.label
	}
	return s.publicLabel
}

// Position returns the ordering position of the status.
func (s *Status) Position() int {
	return s.position
}

// Color returns the display color.
func (s *Status) Color() string {
	return s.color
}

// RedirectTo returns the code of the redirect target, or "" when the status
// has no redirect.
func (s *Status) RedirectTo() string {
	return s.redirectTo
}

// HasRedirect reports whether the status redirects to another status.
func (s *Status) HasRedirect() bool {
	return s.redirectTo != ""
}

// SetRedirect sets or clears the one-hop redirect target.
// A status may not redirect to itself.
func (s *Status) SetRedirect(code string) error {
	if code == s.code && code != "" {
		return errs.NewValueIsInvalidErrorWithCause("redirectTo",
			errors.New("status cannot redirect to itself"))
	}
	s.redirectTo = code
	return nil
}

// SetColor sets the display color.
func (s *Status) SetColor(color string) {
	s.color = color
}

// SetLabels sets the admin, internal and public labels.
// Empty values keep the fallback behavior of the getters.
func (s *Status) SetLabels(label, internalLabel, publicLabel string) {
	if label != "" {
		s.label = label
	}
	s.internalLabel = internalLabel
	s.publicLabel = publicLabel
}

// IsEqual compares two statuses by identifier.
func (s *Status) IsEqual(other *Status) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// String returns the status code.
func (s *Status) String() string {
	return s.code
}
