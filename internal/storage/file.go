package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jeanpaul/assistant/internal/contacts"
	"github.com/jeanpaul/assistant/internal/notes"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps each aggregate in its own snapshot file.
type FileStore struct {
	contactsPath string
	notesPath    string
	codec        Codec
	log          *zap.Logger
	now          func() time.Time
}

func NewFileStore(contactsPath, notesPath string, codec Codec, log *zap.Logger) *FileStore {
	return &FileStore{
		contactsPath: contactsPath,
		notesPath:    notesPath,
		codec:        codec,
		log:          log,
		now:          time.Now,
	}
}

func (s *FileStore) Location() string { return s.contactsPath }

func (s *FileStore) Close() error { return nil }

func (s *FileStore) LoadContacts(ctx context.Context) (*contacts.AddressBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var snap ContactsSnapshot
	found, err := s.read(s.contactsPath, &snap)
	if err != nil {
		return nil, err
	}
	if !found {
		s.log.Info("no contacts snapshot, starting empty", zap.String("path", s.contactsPath))
		return contacts.NewAddressBook(), nil
	}
	from, err := UpgradeContacts(&snap)
	if err != nil {
		return nil, err
	}
	if from != SchemaVersion {
		s.log.Info("upgraded contacts snapshot", zap.Int("from", from), zap.Int("to", SchemaVersion))
	}
	book, err := RestoreContacts(snap, s.now())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.contactsPath, err)
	}
	s.log.Info("contacts loaded", zap.String("path", s.contactsPath), zap.Int("count", book.Len()))
	return book, nil
}

func (s *FileStore) SaveContacts(ctx context.Context, book *contacts.AddressBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(s.contactsPath, SnapshotContacts(book, s.now())); err != nil {
		return err
	}
	s.log.Info("contacts saved", zap.String("path", s.contactsPath), zap.Int("count", book.Len()))
	return nil
}

func (s *FileStore) LoadNotes(ctx context.Context) (*notes.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.notesPath == "" {
		return notes.NewBook(), nil
	}
	var snap NotesSnapshot
	found, err := s.read(s.notesPath, &snap)
	if err != nil {
		return nil, err
	}
	if !found {
		s.log.Info("no notes snapshot, starting empty", zap.String("path", s.notesPath))
		return notes.NewBook(), nil
	}
	from, err := UpgradeNotes(&snap)
	if err != nil {
		return nil, err
	}
	if from != SchemaVersion {
		s.log.Info("upgraded notes snapshot", zap.Int("from", from), zap.Int("to", SchemaVersion))
	}
	book, err := RestoreNotes(snap)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.notesPath, err)
	}
	s.log.Info("notes loaded", zap.String("path", s.notesPath), zap.Int("count", book.Len()))
	return book, nil
}

func (s *FileStore) SaveNotes(ctx context.Context, book *notes.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.notesPath == "" {
		return ErrNoNotesPath
	}
	if err := s.write(s.notesPath, SnapshotNotes(book, s.now())); err != nil {
		return err
	}
	s.log.Info("notes saved", zap.String("path", s.notesPath), zap.Int("count", book.Len()))
	return nil
}

func (s *FileStore) read(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := s.codec.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// write replaces path with the encoded snapshot via a temp file and rename,
// so readers never see a half-written file.
func (s *FileStore) write(path string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
