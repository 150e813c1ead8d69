package contacts

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/assistant/internal/errs"
)

func newTestRecord(t *testing.T, name string, phones ...string) *Record {
	t.Helper()
	rec, err := NewRecord(name)
	require.NoError(t, err)
	for _, p := range phones {
		_, err := rec.AddPhone(p)
		require.NoError(t, err)
	}
	return rec
}

func TestRecord_AddPhoneTwice(t *testing.T) {
	rec := newTestRecord(t, "Ann")

	added, err := rec.AddPhone("0501234567")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = rec.AddPhone("0501234567")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"0501234567"}, rec.Phones())
}

func TestRecord_AddPhoneInvalid(t *testing.T) {
	rec := newTestRecord(t, "Ann")

	_, err := rec.AddPhone("123")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Empty(t, rec.Phones())
}

func TestRecord_RemovePhone(t *testing.T) {
	rec := newTestRecord(t, "Ann", "0501234567", "0671234567")

	require.NoError(t, rec.RemovePhone("0501234567"))
	assert.Equal(t, []string{"0671234567"}, rec.Phones())

	require.NoError(t, rec.RemovePhone("0000000000"))
	assert.Equal(t, []string{"0671234567"}, rec.Phones())
}

func TestRecord_FindPhone(t *testing.T) {
	rec := newTestRecord(t, "Ann", "0501234567")

	p, ok := rec.FindPhone(" 0501234567 ")
	assert.True(t, ok)
	assert.Equal(t, "0501234567", p)

	_, ok = rec.FindPhone("0671234567")
	assert.False(t, ok)
}

func TestRecord_EditPhone(t *testing.T) {
	rec := newTestRecord(t, "Ann", "0501234567", "0671234567")

	err := rec.EditPhone("1111111111", "2222222222")
	assert.ErrorIs(t, err, ErrPhoneNotFound)

	err = rec.EditPhone("0501234567", "bad")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Equal(t, []string{"0501234567", "0671234567"}, rec.Phones())

	err = rec.EditPhone("0501234567", "0671234567")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	assert.Equal(t, []string{"0501234567", "0671234567"}, rec.Phones())

	require.NoError(t, rec.EditPhone("0501234567", "0931234567"))
	assert.Equal(t, []string{"0931234567", "0671234567"}, rec.Phones())
}

func TestRecord_Email(t *testing.T) {
	rec := newTestRecord(t, "Ann")

	err := rec.EditEmail("z@y.com")
	assert.ErrorIs(t, err, ErrEmailNotSet)
	assert.True(t, errors.Is(err, errs.ErrNotSet))
	assert.ErrorIs(t, rec.RemoveEmail(), ErrEmailNotSet)

	require.NoError(t, rec.AddEmail("x@y.com"))
	require.NoError(t, rec.EditEmail("z@y.com"))

	email, ok := rec.Email()
	assert.True(t, ok)
	assert.Equal(t, "z@y.com", email)

	assert.Error(t, rec.EditEmail("broken"))
	email, _ = rec.Email()
	assert.Equal(t, "z@y.com", email)

	require.NoError(t, rec.RemoveEmail())
	_, ok = rec.Email()
	assert.False(t, ok)
}

func TestRecord_Address(t *testing.T) {
	rec := newTestRecord(t, "Ann")

	assert.ErrorIs(t, rec.EditAddress("Main street 1"), ErrAddressNotSet)
	assert.ErrorIs(t, rec.RemoveAddress(), ErrAddressNotSet)

	require.NoError(t, rec.AddAddress("Main street 1"))
	require.NoError(t, rec.EditAddress("Side street 2"))
	addr, ok := rec.Address()
	assert.True(t, ok)
	assert.Equal(t, "Side street 2", addr)

	// blank input unsets rather than failing
	require.NoError(t, rec.AddAddress("   "))
	_, ok = rec.Address()
	assert.False(t, ok)
}

func TestRecord_BirthdayOverwrites(t *testing.T) {
	rec := newTestRecord(t, "Ann")

	require.NoError(t, rec.AddBirthday("01.02.1990"))
	require.NoError(t, rec.AddBirthday("03.04.1991"))

	bd, ok := rec.Birthday()
	require.True(t, ok)
	assert.Equal(t, "03.04.1991", bd.String())

	assert.Error(t, rec.AddBirthday(time.Now().AddDate(0, 0, 2).Format(DateLayout)))
	bd, _ = rec.Birthday()
	assert.Equal(t, "03.04.1991", bd.String())
}

type stubNotes map[string][]string

func (s stubNotes) NoteLines(contact string) []string { return s[contact] }

func TestRecord_Format(t *testing.T) {
	rec := newTestRecord(t, "Ann", "0501234567")
	require.NoError(t, rec.AddEmail("ann@example.com"))

	assert.Equal(t, "Contact name: Ann, phones: 0501234567, email: ann@example.com", rec.String())
	assert.Equal(t, rec.String(), rec.Format(nil))
	assert.Equal(t, rec.String(), rec.Format(stubNotes{}))

	out := rec.Format(stubNotes{"Ann": {"[a1b2c3d4] call back #work"}})
	assert.Contains(t, out, "notes:")
	assert.Contains(t, out, "[a1b2c3d4] call back #work")
}
