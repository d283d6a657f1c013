// Package validation holds the field validators for the order and
// contact forms. Validators are pure and idempotent, they never touch
// stored state.
package validation

import (
	"strings"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
)

// ErrorKind identifies why a field was rejected.
type ErrorKind string

const (
	ErrRequired     ErrorKind = "required"
	ErrTooShort     ErrorKind = "too_short"
	ErrInvalidEmail ErrorKind = "invalid_email"
	ErrNotAccepted  ErrorKind = "not_accepted"
)

// Errors maps field names to error kinds. An empty map means valid.
type Errors map[string]ErrorKind

func (e Errors) Valid() bool { return len(e) == 0 }

// minPhoneLen matches the storefront's historical rule: length only,
// no format check.
const minPhoneLen = 9

// ValidateOrderDraft checks the checkout form. The phone and email
// rules are intentionally weak (length-only, "@"-only) and must stay
// that way: tightening them changes what the storefront accepts.
// region, postalCode and note are unchecked.
func ValidateOrderDraft(draft domain.OrderDraft) Errors {
	errs := Errors{}

	if strings.TrimSpace(draft.FullName) == "" {
		errs["fullName"] = ErrRequired
	}
	if trimmed := strings.TrimSpace(draft.Phone); trimmed == "" {
		errs["phone"] = ErrRequired
	} else if len(draft.Phone) < minPhoneLen {
		errs["phone"] = ErrTooShort
	}
	if trimmed := strings.TrimSpace(draft.Email); trimmed == "" {
		errs["email"] = ErrRequired
	} else if !strings.Contains(draft.Email, "@") {
		errs["email"] = ErrInvalidEmail
	}
	if strings.TrimSpace(draft.Address) == "" {
		errs["address"] = ErrRequired
	}
	if strings.TrimSpace(draft.City) == "" {
		errs["city"] = ErrRequired
	}
	if !draft.AcceptTerms {
		errs["acceptTerms"] = ErrNotAccepted
	}

	return errs
}

// ValidateContact checks the contact form: name is required, email and
// message are optional.
func ValidateContact(name string) Errors {
	errs := Errors{}
	if strings.TrimSpace(name) == "" {
		errs["name"] = ErrRequired
	}
	return errs
}
