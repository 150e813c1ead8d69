package contacts

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jeanpaul/assistant/internal/errs"
)

// DateLayout is the DD.MM.YYYY layout used for birthdays everywhere.
const DateLayout = "02.01.2006"

const (
	phoneLength      = 10
	minAddressLength = 5
	minBirthdayYear  = 1900
	forbiddenInAddr  = "<>@#$%^&*"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Name identifies a contact. Stored as entered (trimmed), compared
// case-insensitively by the address book.
type Name struct{ value string }

func NewName(raw string) (Name, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Name{}, errs.Invalid("name must be a non-empty string")
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }

// key is the case-insensitive identity of the name.
func (n Name) key() string { return foldKey(n.value) }

func foldKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Phone is exactly ten ASCII digits.
type Phone struct{ value string }

func NewPhone(raw string) (Phone, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Phone{}, errs.Invalid("phone must be a non-empty string")
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return Phone{}, errs.Invalid("phone number must contain only digits")
		}
	}
	if len(v) != phoneLength {
		return Phone{}, errs.Invalid("phone number must be %d digits long", phoneLength)
	}
	return Phone{value: v}, nil
}

func (p Phone) String() string { return p.value }

type Email struct{ value string }

func NewEmail(raw string) (Email, error) {
	v := strings.TrimSpace(raw)
	if !emailPattern.MatchString(v) {
		return Email{}, errs.Invalid("invalid email %q, expected something like name@example.com", v)
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }

// Birthday is a past calendar date no earlier than 1900.
type Birthday struct{ date time.Time }

// NewBirthday parses DD.MM.YYYY against the current date.
func NewBirthday(raw string) (Birthday, error) {
	return ParseBirthday(raw, time.Now())
}

// ParseBirthday parses DD.MM.YYYY and rejects dates after today.
func ParseBirthday(raw string, today time.Time) (Birthday, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), today.Location())
	if err != nil {
		return Birthday{}, errs.Invalid("invalid date format, use DD.MM.YYYY")
	}
	if d.Year() < minBirthdayYear || d.After(dateOf(today)) {
		return Birthday{}, errs.Invalid("birthday must be between %d and today", minBirthdayYear)
	}
	return Birthday{date: d}, nil
}

func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(DateLayout) }

// Address is free text. The zero value is "unset".
type Address struct{ value string }

// NewAddress validates raw. Blank input returns an unset Address and no error.
func NewAddress(raw string) (Address, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Address{}, nil
	}
	if utf8.RuneCountInString(v) < minAddressLength {
		return Address{}, errs.Invalid("address must be at least %d characters long", minAddressLength)
	}
	if strings.ContainsAny(v, forbiddenInAddr) {
		return Address{}, errs.Invalid("address must not contain any of: < > @ # $ %% ^ & *")
	}
	return Address{value: v}, nil
}

func (a Address) IsSet() bool { return a.value != "" }

func (a Address) String() string { return a.value }

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
