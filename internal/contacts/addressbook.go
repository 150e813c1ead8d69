package contacts

import (
	"strings"

	"github.com/jeanpaul/assistant/internal/errs"
)

// AddressBook owns every Record, keyed by name. Lookup ignores case; keys keep
// the case they were added with and iteration follows insertion order.
type AddressBook struct {
	records map[string]*Record // exact name -> record
	order   []string
}

func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores rec under its name. A record whose name matches
// case-insensitively is replaced in place.
func (b *AddressBook) AddRecord(rec *Record) error {
	if rec == nil {
		return errs.Invalid("only contact records can be added")
	}
	if existing := b.lookup(rec.name.key()); existing != nil {
		old := existing.Name()
		delete(b.records, old)
		for i, k := range b.order {
			if k == old {
				b.order[i] = rec.Name()
				break
			}
		}
		b.records[rec.Name()] = rec
		return nil
	}
	b.records[rec.Name()] = rec
	b.order = append(b.order, rec.Name())
	return nil
}

// Find returns the record named name, ignoring case, or nil.
func (b *AddressBook) Find(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.Invalid("name must be a non-empty string")
	}
	if rec, ok := b.records[strings.TrimSpace(name)]; ok {
		return rec, nil
	}
	return b.lookup(foldKey(name)), nil
}

// MustFind is Find that reports a missing contact as ErrContactNotFound.
func (b *AddressBook) MustFind(name string) (*Record, error) {
	rec, err := b.Find(name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrContactNotFound
	}
	return rec, nil
}

func (b *AddressBook) lookup(key string) *Record {
	for _, k := range b.order {
		if foldKey(k) == key {
			return b.records[k]
		}
	}
	return nil
}

// Delete removes the record stored under exactly name.
func (b *AddressBook) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Invalid("name must be a non-empty string")
	}
	if _, ok := b.records[name]; !ok {
		return errs.Newf(errs.ErrNotFound, "contact '%s' not found", name)
	}
	delete(b.records, name)
	for i, k := range b.order {
		if k == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

func (b *AddressBook) Len() int { return len(b.order) }

// Names returns the stored names in insertion order.
func (b *AddressBook) Names() []string {
	return append([]string(nil), b.order...)
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.records[k])
	}
	return out
}

// Search returns records whose name contains keyword (ignoring case) or whose
// phone or email contains it.
func (b *AddressBook) Search(keyword string) []*Record {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil
	}
	var out []*Record
	for _, rec := range b.Records() {
		if matches(rec, kw) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec *Record, kw string) bool {
	if strings.Contains(strings.ToLower(rec.Name()), kw) {
		return true
	}
	for _, p := range rec.phones {
		if strings.Contains(p.value, kw) {
			return true
		}
	}
	if e, ok := rec.Email(); ok && strings.Contains(strings.ToLower(e), kw) {
		return true
	}
	return false
}
