package notes

import (
	"strings"

	"github.com/jeanpaul/assistant/internal/errs"
)

var ErrNoteNotFound = errs.New(errs.ErrNotFound, "note not found")

// Match pairs a note with the contact that owns it.
type Match struct {
	Contact string
	Note    *Note
}

// Book maps contact names to their notes. Contacts are keyed by the exact
// name string; deleting a contact elsewhere leaves its notes here.
type Book struct {
	notes map[string][]*Note
	order []string
	ids   map[string]struct{}
}

func NewBook() *Book {
	return &Book{
		notes: make(map[string][]*Note),
		ids:   make(map[string]struct{}),
	}
}

// Add appends note to contact's notes. Note ids are unique across the book.
func (b *Book) Add(contact string, note *Note) error {
	if strings.TrimSpace(contact) == "" {
		return errs.Invalid("contact name must be a non-empty string")
	}
	if note == nil || note.ID == "" {
		return errs.Invalid("note must have an id")
	}
	if _, dup := b.ids[note.ID]; dup {
		return errs.Newf(errs.ErrAlreadyExists, "note %s already exists", note.ShortID())
	}
	if _, ok := b.notes[contact]; !ok {
		b.order = append(b.order, contact)
	}
	b.notes[contact] = append(b.notes[contact], note)
	b.ids[note.ID] = struct{}{}
	return nil
}

// Edit replaces text and tags of the first note of contact whose id starts
// with prefix. It reports whether a note matched.
func (b *Book) Edit(contact, prefix, text string, tags []string) bool {
	if prefix == "" {
		return false
	}
	for _, n := range b.notes[contact] {
		if strings.HasPrefix(n.ID, prefix) {
			n.Text = text
			n.Tags = cleanTags(tags)
			return true
		}
	}
	return false
}

// Delete removes every note of contact whose id starts with prefix and
// returns how many were removed.
func (b *Book) Delete(contact, prefix string) (int, error) {
	if prefix == "" {
		return 0, errs.Invalid("note id must be a non-empty string")
	}
	list, ok := b.notes[contact]
	if !ok {
		return 0, nil
	}
	kept := list[:0]
	removed := 0
	for _, n := range list {
		if strings.HasPrefix(n.ID, prefix) {
			delete(b.ids, n.ID)
			removed++
			continue
		}
		kept = append(kept, n)
	}
	b.notes[contact] = kept
	return removed, nil
}

// SearchByTag finds notes carrying tag, ignoring case, across all contacts.
func (b *Book) SearchByTag(tag string) []Match {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	return b.filter(func(n *Note) bool { return n.HasTag(tag) })
}

// SearchByText finds notes whose text contains keyword, ignoring case.
func (b *Book) SearchByText(keyword string) []Match {
	kw := strings.ToLower(keyword)
	return b.filter(func(n *Note) bool {
		return strings.Contains(strings.ToLower(n.Text), kw)
	})
}

func (b *Book) filter(keep func(*Note) bool) []Match {
	var out []Match
	for _, c := range b.order {
		for _, n := range b.notes[c] {
			if keep(n) {
				out = append(out, Match{Contact: c, Note: n})
			}
		}
	}
	return out
}

// Get returns contact's notes in insertion order, or an empty slice.
func (b *Book) Get(contact string) []*Note {
	return append([]*Note{}, b.notes[contact]...)
}

// All returns a copy of the full contact -> notes mapping.
func (b *Book) All() map[string][]*Note {
	out := make(map[string][]*Note, len(b.notes))
	for c, list := range b.notes {
		out[c] = append([]*Note{}, list...)
	}
	return out
}

// Contacts lists contact names with notes, in the order first seen.
func (b *Book) Contacts() []string {
	out := make([]string, 0, len(b.order))
	for _, c := range b.order {
		if len(b.notes[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Len counts notes across all contacts.
func (b *Book) Len() int {
	return len(b.ids)
}

// NoteLines renders contact's notes for display under a contact record.
func (b *Book) NoteLines(contact string) []string {
	list := b.notes[contact]
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.String()
	}
	return out
}
