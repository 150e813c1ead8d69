package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeanpaul/assistant/internal/contacts"
	"github.com/jeanpaul/assistant/internal/errs"
)

var contactHeaders = []string{"Name", "Phones", "Email", "Address", "Birthday"}

func contactRow(rec *contacts.Record) []string {
	row := []string{rec.Name(), strings.Join(rec.Phones(), "; "), "", "", ""}
	if v, ok := rec.Email(); ok {
		row[2] = v
	}
	if v, ok := rec.Address(); ok {
		row[3] = v
	}
	if b, ok := rec.Birthday(); ok {
		row[4] = b.String()
	}
	return row
}

func contactTable(title string, recs []*contacts.Record) *Table {
	t := &Table{Title: title, Headers: contactHeaders}
	for _, rec := range recs {
		t.Rows = append(t.Rows, contactRow(rec))
	}
	return t
}

func contactLines(recs []*contacts.Record) string {
	lines := make([]string, len(recs))
	for i, rec := range recs {
		lines[i] = rec.String()
	}
	return strings.Join(lines, "\n")
}

func addContact(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := need(args, 1); err != nil {
		return Reply{}, err
	}
	name, phones := args[0], args[1:]

	// Validate every phone before touching the book.
	for _, p := range phones {
		if _, err := contacts.NewPhone(p); err != nil {
			return Reply{}, err
		}
	}

	rec, err := s.Book.Find(name)
	if err != nil {
		return Reply{}, err
	}
	msg := "Contact updated."
	if rec == nil {
		if rec, err = contacts.NewRecord(name); err != nil {
			return Reply{}, err
		}
		if err := s.Book.AddRecord(rec); err != nil {
			return Reply{}, err
		}
		msg = "Contact added."
	}

	reply := Reply{Status: StatusOK}
	var skipped []string
	for _, p := range phones {
		added, err := rec.AddPhone(p)
		if err != nil {
			return Reply{}, err
		}
		if !added {
			skipped = append(skipped, fmt.Sprintf("Phone %s already exists for %s. Not adding.", strings.TrimSpace(p), rec.Name()))
		}
	}
	if len(skipped) > 0 {
		reply.Status = StatusNotice
		msg += "\n" + strings.Join(skipped, "\n")
	}
	reply.Text = msg
	return reply, nil
}

func changeContact(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 3); err != nil {
		return Reply{}, err
	}
	rec, err := s.Book.MustFind(args[0])
	if err != nil {
		return Reply{}, err
	}
	if err := rec.EditPhone(args[1], args[2]); err != nil {
		return Reply{}, err
	}
	return Reply{Text: "Contact updated."}, nil
}

func deleteContact(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	name := strings.TrimSpace(args[0])
	if err := s.Book.Delete(name); err != nil {
		return Reply{}, err
	}
	reply := Reply{Text: fmt.Sprintf("Contact '%s' deleted.", name)}
	// Notes are keyed by name and outlive the contact.
	if n := len(s.Notes.Get(name)); n > 0 {
		reply.Status = StatusNotice
		reply.Text += fmt.Sprintf("\n%d note(s) are still stored under '%s'.", n, name)
	}
	return reply, nil
}

func removePhone(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 2); err != nil {
		return Reply{}, err
	}
	rec, err := s.Book.MustFind(args[0])
	if err != nil {
		return Reply{}, err
	}
	_, had := rec.FindPhone(args[1])
	if err := rec.RemovePhone(args[1]); err != nil {
		return Reply{}, err
	}
	if !had {
		return Reply{
			Text:   fmt.Sprintf("%s has no phone %s. Nothing removed.", rec.Name(), strings.TrimSpace(args[1])),
			Status: StatusNotice,
		}, nil
	}
	return Reply{Text: "Phone removed."}, nil
}

func searchContacts(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := need(args, 1); err != nil {
		return Reply{}, err
	}
	found := s.Book.Search(strings.Join(args, " "))
	if len(found) == 0 {
		return Reply{Text: "No matching contacts found.", Status: StatusNotice}, nil
	}
	return Reply{
		Text:  contactLines(found),
		Table: contactTable(fmt.Sprintf("Search results (%d)", len(found)), found),
	}, nil
}

func showContact(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	rec, err := s.Book.MustFind(args[0])
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: rec.Format(s.Notes)}, nil
}

func showAll(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 0); err != nil {
		return Reply{}, err
	}
	if s.Book.Len() == 0 {
		return Reply{Text: "No contacts available.", Status: StatusNotice}, nil
	}
	recs := s.Book.Records()
	return Reply{
		Text:  "All contacts:\n" + contactLines(recs),
		Table: contactTable(fmt.Sprintf("All contacts (%d)", len(recs)), recs),
	}, nil
}

func addBirthday(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 2); err != nil {
		return Reply{}, err
	}
	rec, err := s.Book.MustFind(args[0])
	if err != nil {
		return Reply{}, err
	}
	b, err := contacts.ParseBirthday(args[1], s.Now())
	if err != nil {
		return Reply{}, err
	}
	rec.SetBirthday(b)
	return Reply{Text: "Birthday added."}, nil
}

func showBirthday(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	rec, err := s.Book.MustFind(args[0])
	if err != nil {
		return Reply{}, err
	}
	b, ok := rec.Birthday()
	if !ok {
		return Reply{}, contacts.ErrBirthdayNotSet
	}
	return Reply{Text: fmt.Sprintf("%s's birthday is on %s.", rec.Name(), b)}, nil
}

func upcomingBirthdays(_ context.Context, s *Session, args []string) (Reply, error) {
	if len(args) > 1 {
		return Reply{}, errUsage
	}
	days := s.cfg.Birthdays.DefaultDays
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Reply{}, errs.Invalid("days must be a whole number, got %q", args[0])
		}
		days = n
	}
	return BirthdayReply(s, days)
}

// BirthdayReply lists birthdays in the next days days. The one-shot
// `assistant birthdays` subcommand shares it with the interactive command.
func BirthdayReply(s *Session, days int) (Reply, error) {
	list, err := s.Book.UpcomingBirthdays(days, s.Now())
	if err != nil {
		return Reply{}, err
	}
	if len(list) == 0 {
		return Reply{Text: fmt.Sprintf("No upcoming birthdays in the next %d days.", days), Status: StatusNotice}, nil
	}

	t := &Table{
		Title:   fmt.Sprintf("Upcoming birthdays (next %d days)", days),
		Headers: []string{"Name", "Birthday", "Congratulate on", "In days"},
	}
	lines := []string{"Upcoming birthdays:"}
	for _, u := range list {
		b, _ := u.Record.Birthday()
		congrats := u.Celebration.Format("Mon 02.01.2006")
		t.Rows = append(t.Rows, []string{u.Record.Name(), b.Date().Format("02.01"), congrats, strconv.Itoa(u.DaysUntil)})
		lines = append(lines, fmt.Sprintf("%s: %s (congratulate on %s)", u.Record.Name(), b.Date().Format("02.01"), congrats))
	}
	return Reply{Text: strings.Join(lines, "\n"), Table: t}, nil
}
