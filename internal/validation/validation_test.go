package validation

import (
	"testing"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() domain.OrderDraft {
	return domain.OrderDraft{
		FullName:       "Aziz Karimov",
		Phone:          "+998901234567",
		Email:          "aziz@example.com",
		Address:        "Chilonzor 12",
		City:           "Tashkent",
		DeliveryMethod: domain.DeliveryCourier,
		PaymentMethod:  domain.PaymentCard,
		AcceptTerms:    true,
	}
}

func TestValidateOrderDraft_Valid(t *testing.T) {
	errs := ValidateOrderDraft(validDraft())
	assert.True(t, errs.Valid())
}

func TestValidateOrderDraft_EmptyForm(t *testing.T) {
	errs := ValidateOrderDraft(domain.OrderDraft{})

	require.Len(t, errs, 6)
	for _, field := range []string{"fullName", "phone", "email", "address", "city", "acceptTerms"} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateOrderDraft_WhitespaceOnlyName(t *testing.T) {
	draft := validDraft()
	draft.FullName = "   "

	errs := ValidateOrderDraft(draft)
	assert.Equal(t, ErrRequired, errs["fullName"])
}

func TestValidateOrderDraft_ShortPhone(t *testing.T) {
	draft := validDraft()
	draft.Phone = "12345678" // 8 chars, minimum is 9

	errs := ValidateOrderDraft(draft)
	assert.Equal(t, ErrTooShort, errs["phone"])
}

func TestValidateOrderDraft_PhoneNoFormatCheck(t *testing.T) {
	draft := validDraft()
	draft.Phone = "not-a-phone-number"

	// Length-only rule: anything 9+ chars passes.
	errs := ValidateOrderDraft(draft)
	assert.True(t, errs.Valid())
}

func TestValidateOrderDraft_EmailNeedsAtSign(t *testing.T) {
	draft := validDraft()
	draft.Email = "aziz.example.com"

	errs := ValidateOrderDraft(draft)
	assert.Equal(t, ErrInvalidEmail, errs["email"])
}

func TestValidateOrderDraft_EmailWeakRulePasses(t *testing.T) {
	draft := validDraft()
	draft.Email = "@" // contains "@", passes by design of the original rule

	errs := ValidateOrderDraft(draft)
	assert.True(t, errs.Valid())
}

func TestValidateOrderDraft_TermsNotAccepted(t *testing.T) {
	draft := validDraft()
	draft.AcceptTerms = false

	errs := ValidateOrderDraft(draft)
	assert.Equal(t, ErrNotAccepted, errs["acceptTerms"])
}

func TestValidateOrderDraft_OptionalFieldsUnchecked(t *testing.T) {
	draft := validDraft()
	draft.Region = ""
	draft.PostalCode = ""
	draft.Note = ""

	errs := ValidateOrderDraft(draft)
	assert.True(t, errs.Valid())
}

func TestValidateOrderDraft_Idempotent(t *testing.T) {
	draft := domain.OrderDraft{}

	first := ValidateOrderDraft(draft)
	second := ValidateOrderDraft(draft)
	assert.Equal(t, first, second)
}

func TestValidateContact(t *testing.T) {
	assert.True(t, ValidateContact("Aziz").Valid())
	assert.Equal(t, ErrRequired, ValidateContact("  ")["name"])
}
