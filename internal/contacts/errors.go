package contacts

import "github.com/jeanpaul/assistant/internal/errs"

var (
	ErrContactNotFound = errs.New(errs.ErrNotFound, "contact not found")
	ErrPhoneNotFound   = errs.New(errs.ErrNotFound, "phone number not found")
	ErrEmailNotSet     = errs.New(errs.ErrNotSet, "email is not set for this contact")
	ErrAddressNotSet   = errs.New(errs.ErrNotSet, "address is not set for this contact")
	ErrBirthdayNotSet  = errs.New(errs.ErrNotSet, "birthday is not set for this contact")
)
