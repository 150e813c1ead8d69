package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeanpaul/assistant/internal/contacts"
	"github.com/jeanpaul/assistant/internal/notes"
)

// SchemaVersion is the snapshot layout written by this build.
//
//	1: contacts with name, phones and birthday; notes with contact and text
//	2: email and address on contacts; id and tags on notes
//	3: saved_at on both snapshots
const SchemaVersion = 3

// ContactsSnapshot is the on-disk form of an address book.
type ContactsSnapshot struct {
	Version  int          `json:"version" yaml:"version"`
	SavedAt  *time.Time   `json:"saved_at,omitempty" yaml:"saved_at,omitempty"`
	Contacts []ContactDoc `json:"contacts" yaml:"contacts"`
}

type ContactDoc struct {
	Name     string   `json:"name" yaml:"name"`
	Phones   []string `json:"phones,omitempty" yaml:"phones,omitempty"`
	Email    *string  `json:"email,omitempty" yaml:"email,omitempty"`
	Address  *string  `json:"address,omitempty" yaml:"address,omitempty"`
	Birthday *string  `json:"birthday,omitempty" yaml:"birthday,omitempty"`
}

// NotesSnapshot is the on-disk form of a notes book.
type NotesSnapshot struct {
	Version int        `json:"version" yaml:"version"`
	SavedAt *time.Time `json:"saved_at,omitempty" yaml:"saved_at,omitempty"`
	Notes   []NoteDoc  `json:"notes" yaml:"notes"`
}

type NoteDoc struct {
	Contact string   `json:"contact" yaml:"contact"`
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Text    string   `json:"text" yaml:"text"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// UpgradeContacts brings s to SchemaVersion in place. Fields a version did not
// know about are left absent. It reports the version it started from.
func UpgradeContacts(s *ContactsSnapshot) (int, error) {
	from := s.Version
	if from == 0 {
		from = 1
	}
	if from > SchemaVersion {
		return from, fmt.Errorf("%w: contacts snapshot version %d, newest known is %d", ErrUnsupportedVersion, from, SchemaVersion)
	}
	if from < 2 {
		for i := range s.Contacts {
			s.Contacts[i].Email = nil
			s.Contacts[i].Address = nil
		}
	}
	s.Version = SchemaVersion
	return from, nil
}

// UpgradeNotes brings s to SchemaVersion in place. Notes without an id get a
// fresh one; version 1 notes lose any stray tags.
func UpgradeNotes(s *NotesSnapshot) (int, error) {
	from := s.Version
	if from == 0 {
		from = 1
	}
	if from > SchemaVersion {
		return from, fmt.Errorf("%w: notes snapshot version %d, newest known is %d", ErrUnsupportedVersion, from, SchemaVersion)
	}
	for i := range s.Notes {
		if from < 2 {
			s.Notes[i].Tags = nil
		}
		if s.Notes[i].ID == "" {
			s.Notes[i].ID = uuid.New().String()
		}
	}
	s.Version = SchemaVersion
	return from, nil
}

// SnapshotContacts captures book at version SchemaVersion.
func SnapshotContacts(book *contacts.AddressBook, now time.Time) ContactsSnapshot {
	s := ContactsSnapshot{Version: SchemaVersion, SavedAt: &now, Contacts: []ContactDoc{}}
	for _, rec := range book.Records() {
		doc := ContactDoc{Name: rec.Name(), Phones: rec.Phones()}
		if e, ok := rec.Email(); ok {
			doc.Email = &e
		}
		if a, ok := rec.Address(); ok {
			doc.Address = &a
		}
		if b, ok := rec.Birthday(); ok {
			v := b.String()
			doc.Birthday = &v
		}
		s.Contacts = append(s.Contacts, doc)
	}
	return s
}

// RestoreContacts rebuilds an address book, validating every field again.
func RestoreContacts(s ContactsSnapshot, today time.Time) (*contacts.AddressBook, error) {
	book := contacts.NewAddressBook()
	for i, doc := range s.Contacts {
		rec, err := restoreRecord(doc, today)
		if err != nil {
			return nil, fmt.Errorf("contact #%d (%q): %w", i+1, doc.Name, err)
		}
		if err := book.AddRecord(rec); err != nil {
			return nil, err
		}
	}
	return book, nil
}

func restoreRecord(doc ContactDoc, today time.Time) (*contacts.Record, error) {
	rec, err := contacts.NewRecord(doc.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range doc.Phones {
		if _, err := rec.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if doc.Email != nil {
		if err := rec.AddEmail(*doc.Email); err != nil {
			return nil, err
		}
	}
	if doc.Address != nil {
		if err := rec.AddAddress(*doc.Address); err != nil {
			return nil, err
		}
	}
	if doc.Birthday != nil {
		b, err := contacts.ParseBirthday(*doc.Birthday, today)
		if err != nil {
			return nil, err
		}
		rec.SetBirthday(b)
	}
	return rec, nil
}

// SnapshotNotes captures book at version SchemaVersion, contacts in book order.
func SnapshotNotes(book *notes.Book, now time.Time) NotesSnapshot {
	s := NotesSnapshot{Version: SchemaVersion, SavedAt: &now, Notes: []NoteDoc{}}
	for _, c := range book.Contacts() {
		for _, n := range book.Get(c) {
			s.Notes = append(s.Notes, NoteDoc{
				Contact: c,
				ID:      n.ID,
				Text:    n.Text,
				Tags:    append([]string(nil), n.Tags...),
			})
		}
	}
	return s
}

func RestoreNotes(s NotesSnapshot) (*notes.Book, error) {
	book := notes.NewBook()
	for i, doc := range s.Notes {
		n := &notes.Note{ID: doc.ID, Text: doc.Text, Tags: append([]string{}, doc.Tags...)}
		if err := book.Add(doc.Contact, n); err != nil {
			return nil, fmt.Errorf("note #%d: %w", i+1, err)
		}
	}
	return book, nil
}
