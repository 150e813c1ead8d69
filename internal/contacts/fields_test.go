package contacts

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/assistant/internal/errs"
)

func TestNewName(t *testing.T) {
	n, err := NewName("  Ann Lee ")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", n.String())

	_, err = NewName("   ")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestNewPhone(t *testing.T) {
	valid := []string{"0123456789", "9999999999", " 0501234567 "}
	for _, raw := range valid {
		p, err := NewPhone(raw)
		require.NoError(t, err, raw)
		assert.Len(t, p.String(), 10)
	}

	invalid := map[string]string{
		"too short":   "012345678",
		"too long":    "01234567890",
		"letters":     "01234abcde",
		"plus prefix": "+380501234",
		"inner space": "01234 6789",
		"empty":       "",
		"unicode":     "٠١٢٣٤٥٦٧٨٩",
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := NewPhone(raw)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidInput))
		})
	}
}

func TestNewPhone_Messages(t *testing.T) {
	_, err := NewPhone("12ab")
	assert.EqualError(t, err, "phone number must contain only digits")

	_, err = NewPhone("12345")
	assert.EqualError(t, err, "phone number must be 10 digits long")
}

func TestNewEmail(t *testing.T) {
	for _, raw := range []string{"x@y.com", "first.last@mail.example.org", "a-b_c@d-e.io"} {
		_, err := NewEmail(raw)
		assert.NoError(t, err, raw)
	}
	for _, raw := range []string{"plain", "no@tld", "@example.com", "a@b.", "a b@c.com", ""} {
		_, err := NewEmail(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseBirthday(t *testing.T) {
	today := time.Date(2024, time.June, 13, 15, 30, 0, 0, time.UTC)

	t.Run("lower bound", func(t *testing.T) {
		b, err := ParseBirthday("01.01.1900", today)
		require.NoError(t, err)
		assert.Equal(t, "01.01.1900", b.String())
	})

	t.Run("today is allowed", func(t *testing.T) {
		_, err := ParseBirthday("13.06.2024", today)
		assert.NoError(t, err)
	})

	t.Run("before 1900", func(t *testing.T) {
		_, err := ParseBirthday("31.12.1899", today)
		assert.EqualError(t, err, "birthday must be between 1900 and today")
	})

	t.Run("future", func(t *testing.T) {
		_, err := ParseBirthday("14.06.2024", today)
		assert.EqualError(t, err, "birthday must be between 1900 and today")
	})

	t.Run("bad format", func(t *testing.T) {
		for _, raw := range []string{"1990-05-01", "32.01.1990", "01/05/1990", "", "31.02.1990"} {
			_, err := ParseBirthday(raw, today)
			assert.EqualError(t, err, "invalid date format, use DD.MM.YYYY", raw)
		}
	})
}

func TestNewAddress(t *testing.T) {
	a, err := NewAddress("  ")
	require.NoError(t, err)
	assert.False(t, a.IsSet())

	a, err = NewAddress(" 12 Baker Street ")
	require.NoError(t, err)
	assert.True(t, a.IsSet())
	assert.Equal(t, "12 Baker Street", a.String())

	_, err = NewAddress("Kyiv")
	assert.EqualError(t, err, "address must be at least 5 characters long")

	for _, c := range []string{"<", ">", "@", "#", "$", "%", "^", "&", "*"} {
		_, err := NewAddress("Main street " + c)
		assert.Error(t, err, c)
	}
}
