package contacts

import (
	"fmt"
	"strings"

	"github.com/jeanpaul/assistant/internal/errs"
)

// NoteSource supplies the note lines shown under a contact. The notes book
// implements it; a Record never stores notes itself.
type NoteSource interface {
	NoteLines(contact string) []string
}

// Record is one contact with its phones, email, address and birthday.
type Record struct {
	name     Name
	phones   []Phone
	email    *Email
	address  Address
	birthday *Birthday
}

func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

func (r *Record) Name() string { return r.name.String() }

// Phones returns a copy of the phone values in insertion order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.String()
	}
	return out
}

// AddPhone appends phone. It reports false, without error, when the record
// already holds the same number.
func (r *Record) AddPhone(raw string) (bool, error) {
	p, err := NewPhone(raw)
	if err != nil {
		return false, err
	}
	if r.indexOfPhone(p.value) >= 0 {
		return false, nil
	}
	r.phones = append(r.phones, p)
	return true, nil
}

// RemovePhone drops phone if present.
func (r *Record) RemovePhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if i := r.indexOfPhone(p.value); i >= 0 {
		r.phones = append(r.phones[:i], r.phones[i+1:]...)
	}
	return nil
}

func (r *Record) FindPhone(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if i := r.indexOfPhone(v); i >= 0 {
		return r.phones[i].value, true
	}
	return "", false
}

// EditPhone replaces old with newRaw. The record is unchanged on any error.
func (r *Record) EditPhone(old, newRaw string) error {
	i := r.indexOfPhone(strings.TrimSpace(old))
	if i < 0 {
		return ErrPhoneNotFound
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	if j := r.indexOfPhone(p.value); j >= 0 && j != i {
		return errs.Invalid("phone %s already belongs to %s", p.value, r.Name())
	}
	r.phones[i] = p
	return nil
}

func (r *Record) indexOfPhone(v string) int {
	for i, p := range r.phones {
		if p.value == v {
			return i
		}
	}
	return -1
}

func (r *Record) Email() (string, bool) {
	if r.email == nil {
		return "", false
	}
	return r.email.String(), true
}

// AddEmail sets the email, replacing any previous one.
func (r *Record) AddEmail(raw string) error {
	e, err := NewEmail(raw)
	if err != nil {
		return err
	}
	r.email = &e
	return nil
}

func (r *Record) EditEmail(raw string) error {
	if r.email == nil {
		return ErrEmailNotSet
	}
	return r.AddEmail(raw)
}

func (r *Record) RemoveEmail() error {
	if r.email == nil {
		return ErrEmailNotSet
	}
	r.email = nil
	return nil
}

func (r *Record) Address() (string, bool) {
	return r.address.String(), r.address.IsSet()
}

// AddAddress sets the address. Blank input clears it.
func (r *Record) AddAddress(raw string) error {
	a, err := NewAddress(raw)
	if err != nil {
		return err
	}
	r.address = a
	return nil
}

func (r *Record) EditAddress(raw string) error {
	if !r.address.IsSet() {
		return ErrAddressNotSet
	}
	return r.AddAddress(raw)
}

func (r *Record) RemoveAddress() error {
	if !r.address.IsSet() {
		return ErrAddressNotSet
	}
	r.address = Address{}
	return nil
}

// AddBirthday sets the birthday, overwriting any previous one.
func (r *Record) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthday stores an already validated birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

func (r *Record) String() string {
	phones := "none"
	if len(r.phones) > 0 {
		phones = strings.Join(r.Phones(), "; ")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Contact name: %s, phones: %s", r.Name(), phones)
	if e, ok := r.Email(); ok {
		fmt.Fprintf(&b, ", email: %s", e)
	}
	if a, ok := r.Address(); ok {
		fmt.Fprintf(&b, ", address: %s", a)
	}
	if bd, ok := r.Birthday(); ok {
		fmt.Fprintf(&b, ", birthday: %s", bd)
	}
	return b.String()
}

// Format renders the contact followed by its notes, one per line.
// A nil source renders the contact alone.
func (r *Record) Format(notes NoteSource) string {
	if notes == nil {
		return r.String()
	}
	lines := notes.NoteLines(r.Name())
	if len(lines) == 0 {
		return r.String()
	}
	var b strings.Builder
	b.WriteString(r.String())
	b.WriteString("\n  notes:")
	for _, l := range lines {
		b.WriteString("\n    ")
		b.WriteString(l)
	}
	return b.String()
}
