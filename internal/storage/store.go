// Package storage persists the address book and the notes book as full
// snapshots, either as YAML/JSON files or in a SQLite database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jeanpaul/assistant/internal/contacts"
	"github.com/jeanpaul/assistant/internal/notes"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrUnknownBackend     = errors.New("unknown storage backend")
	ErrNoNotesPath        = errors.New("no notes location configured")
)

// Backends.
const (
	BackendYAML   = "yaml"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store loads and saves whole aggregates. A missing snapshot loads as an
// empty aggregate.
type Store interface {
	LoadContacts(ctx context.Context) (*contacts.AddressBook, error)
	SaveContacts(ctx context.Context, book *contacts.AddressBook) error
	LoadNotes(ctx context.Context) (*notes.Book, error)
	SaveNotes(ctx context.Context, book *notes.Book) error
	// Location describes where the contacts snapshot lives.
	Location() string
	Close() error
}

// Options selects a backend and its files. Relative paths are resolved
// against Dir.
type Options struct {
	Backend      string
	Dir          string
	ContactsFile string
	NotesFile    string
	SQLitePath   string
}

// Open builds the configured Store.
func Open(opts Options, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch strings.ToLower(opts.Backend) {
	case BackendYAML, "":
		return NewFileStore(resolve(opts.Dir, opts.ContactsFile), resolve(opts.Dir, opts.NotesFile), YAMLCodec{}, log), nil
	case BackendJSON:
		return NewFileStore(resolve(opts.Dir, opts.ContactsFile), resolve(opts.Dir, opts.NotesFile), NewJSONCodec(), log), nil
	case BackendSQLite:
		return NewSQLiteStore(resolve(opts.Dir, opts.SQLitePath), log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}

// OpenPath opens a contacts-only store at path, picking the backend from the
// file extension and falling back to fallback.
func OpenPath(path, fallback string, log *zap.Logger) (Store, error) {
	backend := BackendForPath(path, fallback)
	switch backend {
	case BackendSQLite:
		return NewSQLiteStore(path, log)
	case BackendYAML, BackendJSON:
		return Open(Options{Backend: backend, ContactsFile: path}, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// BackendForPath guesses the backend from a file extension.
func BackendForPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return BackendYAML
	case ".json":
		return BackendJSON
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	}
	return strings.ToLower(fallback)
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
