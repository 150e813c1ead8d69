package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeanpaul/assistant/internal/errs"
	"github.com/jeanpaul/assistant/internal/notes"
)

var noteHeaders = []string{"Contact", "ID", "Text", "Tags"}

// splitNote separates #tags from the note text. Tags may appear anywhere.
func splitNote(words []string) (string, []string) {
	var text, tags []string
	for _, w := range words {
		if strings.HasPrefix(w, "#") && len(w) > 1 {
			tags = append(tags, strings.TrimPrefix(w, "#"))
			continue
		}
		text = append(text, w)
	}
	return strings.Join(text, " "), tags
}

// noteOwner resolves the key notes are stored under. Existing contacts use
// their stored name so lookups ignore case; orphaned notes keep the raw name.
func noteOwner(s *Session, name string) (string, error) {
	rec, err := s.Book.Find(name)
	if err != nil {
		return "", err
	}
	if rec != nil {
		return rec.Name(), nil
	}
	return strings.TrimSpace(name), nil
}

func noteRow(contact string, n *notes.Note) []string {
	return []string{contact, n.ShortID(), n.Text, formatTags(n.Tags)}
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, ", ")
}

func matchReply(title, empty string, found []notes.Match) Reply {
	if len(found) == 0 {
		return Reply{Text: empty, Status: StatusNotice}
	}
	t := &Table{Title: fmt.Sprintf("%s (%d)", title, len(found)), Headers: noteHeaders}
	lines := make([]string, len(found))
	for i, m := range found {
		t.Rows = append(t.Rows, noteRow(m.Contact, m.Note))
		lines[i] = m.Contact + ": " + m.Note.String()
	}
	return Reply{Text: strings.Join(lines, "\n"), Table: t}
}

func addNote(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := need(args, 2); err != nil {
		return Reply{}, err
	}
	rec, err := s.Book.MustFind(args[0])
	if err != nil {
		return Reply{}, err
	}
	text, tags := splitNote(args[1:])
	if text == "" {
		return Reply{}, errs.Invalid("note text must not be empty")
	}
	n := notes.New(text, tags)
	if err := s.Notes.Add(rec.Name(), n); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Note %s added for %s.", n.ShortID(), rec.Name())}, nil
}

func editNote(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := need(args, 3); err != nil {
		return Reply{}, err
	}
	owner, err := noteOwner(s, args[0])
	if err != nil {
		return Reply{}, err
	}
	text, tags := splitNote(args[2:])
	if text == "" {
		return Reply{}, errs.Invalid("note text must not be empty")
	}
	if !s.Notes.Edit(owner, args[1], text, tags) {
		return Reply{}, notes.ErrNoteNotFound
	}
	return Reply{Text: "Note updated."}, nil
}

func removeNote(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 2); err != nil {
		return Reply{}, err
	}
	owner, err := noteOwner(s, args[0])
	if err != nil {
		return Reply{}, err
	}
	n, err := s.Notes.Delete(owner, args[1])
	if err != nil {
		return Reply{}, err
	}
	switch n {
	case 0:
		return Reply{}, notes.ErrNoteNotFound
	case 1:
		return Reply{Text: "Note deleted."}, nil
	}
	return Reply{Text: fmt.Sprintf("%d notes matching %q deleted.", n, args[1]), Status: StatusNotice}, nil
}

func showNotes(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	owner, err := noteOwner(s, args[0])
	if err != nil {
		return Reply{}, err
	}
	list := s.Notes.Get(owner)
	found := make([]notes.Match, len(list))
	for i, n := range list {
		found[i] = notes.Match{Contact: owner, Note: n}
	}
	return matchReply("Notes for "+owner, fmt.Sprintf("No notes for %s.", owner), found), nil
}

func allNotes(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 0); err != nil {
		return Reply{}, err
	}
	var found []notes.Match
	all := s.Notes.All()
	for _, c := range s.Notes.Contacts() {
		for _, n := range all[c] {
			found = append(found, notes.Match{Contact: c, Note: n})
		}
	}
	return matchReply("All notes", "No notes available.", found), nil
}

func searchNotesByTag(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	tag := strings.TrimPrefix(args[0], "#")
	return matchReply("Notes tagged #"+tag, fmt.Sprintf("No notes tagged #%s.", tag), s.Notes.SearchByTag(tag)), nil
}

func searchNotesByText(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := need(args, 1); err != nil {
		return Reply{}, err
	}
	kw := strings.Join(args, " ")
	return matchReply(fmt.Sprintf("Notes containing %q", kw), "No matching notes found.", s.Notes.SearchByText(kw)), nil
}
