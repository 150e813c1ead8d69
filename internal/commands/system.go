package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jeanpaul/assistant/internal/errs"
	"github.com/jeanpaul/assistant/internal/storage"
)

// Version is stamped by the build.
var Version = "dev"

func hello(context.Context, *Session, []string) (Reply, error) {
	return Reply{Text: "How can I help you?"}, nil
}

func about(context.Context, *Session, []string) (Reply, error) {
	return Reply{Text: fmt.Sprintf("Assistant %s. Contacts, birthdays and notes in your terminal.", Version)}, nil
}

// helpReply renders the registry as a plain table plus a markdown page.
func helpReply(r *Registry) Reply {
	t := &Table{Title: "Assistant Help", Headers: []string{"Command", "Description"}}
	var md strings.Builder
	md.WriteString("# Assistant Help\n\n| Command | Description |\n|---|---|\n")
	for _, c := range r.Commands() {
		usage := c.Usage
		if len(c.Aliases) > 0 {
			usage += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		t.Rows = append(t.Rows, []string{usage, c.Description})
		fmt.Fprintf(&md, "| `%s` | %s |\n", usage, c.Description)
	}
	md.WriteString("\nTags in notes are words starting with `#`. Dates use `DD.MM.YYYY`.\n")

	lines := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		lines[i] = fmt.Sprintf("%-48s %s", row[0], row[1])
	}
	return Reply{Text: strings.Join(lines, "\n"), Table: t, Markdown: md.String()}
}

func save(ctx context.Context, s *Session, args []string) (Reply, error) {
	if len(args) > 1 {
		return Reply{}, errUsage
	}
	if len(args) == 0 {
		if err := s.Save(ctx); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Data saved."}, nil
	}

	st, err := storage.OpenPath(args[0], s.cfg.Storage.Backend, s.log)
	if err != nil {
		return Reply{}, errs.Invalid("cannot save to %s: %v", args[0], err)
	}
	defer st.Close()
	if err := st.SaveContacts(ctx, s.Book); err != nil {
		return Reply{}, err
	}
	s.log.Info("contacts saved", zap.String("path", args[0]), zap.Int("contacts", s.Book.Len()))
	return Reply{Text: fmt.Sprintf("Contacts saved to %s.", args[0])}, nil
}

func load(ctx context.Context, s *Session, args []string) (Reply, error) {
	if len(args) > 1 {
		return Reply{}, errUsage
	}
	if len(args) == 0 {
		if err := s.Load(ctx); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Data loaded."}, nil
	}

	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Reply{
			Text:   fmt.Sprintf("No saved data found at %s. Staying with the current address book.", path),
			Status: StatusNotice,
		}, nil
	}
	st, err := storage.OpenPath(path, s.cfg.Storage.Backend, s.log)
	if err != nil {
		return Reply{}, errs.Invalid("cannot load %s: %v", path, err)
	}
	defer st.Close()
	book, err := st.LoadContacts(ctx)
	if err != nil {
		return Reply{}, err
	}
	s.Book = book
	s.log.Info("contacts loaded", zap.String("path", path), zap.Int("contacts", book.Len()))
	return Reply{Text: fmt.Sprintf("Loaded %d contact(s) from %s.", book.Len(), path)}, nil
}

func export(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return Reply{}, errs.Invalid("export file must end in .xlsx")
	}
	if err := storage.ExportXLSX(path, s.Book, s.Notes); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Exported %d contact(s) and %d note(s) to %s.", s.Book.Len(), s.Notes.Len(), path)}, nil
}

func exit(ctx context.Context, s *Session, _ []string) (Reply, error) {
	if !s.cfg.Autosave {
		return Reply{Text: "Good bye!", Quit: true}, nil
	}
	if err := s.Save(ctx); err != nil {
		// Quitting still goes ahead; the user sees why nothing was saved.
		s.log.Error("autosave failed", zap.Error(err))
		return Reply{Text: "Could not save data: " + err.Error() + "\nGood bye!", Status: StatusError, Quit: true}, nil
	}
	return Reply{Text: "Data saved. Exiting the assistant bot.\nGood bye!", Quit: true}, nil
}
