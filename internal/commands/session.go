package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jeanpaul/assistant/internal/config"
	"github.com/jeanpaul/assistant/internal/contacts"
	"github.com/jeanpaul/assistant/internal/notes"
	"github.com/jeanpaul/assistant/internal/storage"
)

var _ contacts.NoteSource = (*notes.Book)(nil)

// Session owns the two aggregates for the lifetime of one run. It is not
// safe for concurrent use; front ends dispatch one line at a time.
type Session struct {
	Book  *contacts.AddressBook
	Notes *notes.Book

	store storage.Store
	cfg   *config.Config
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Session)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(cfg *config.Config, store storage.Store, log *zap.Logger, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		Book:  contacts.NewAddressBook(),
		Notes: notes.NewBook(),
		store: store,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) Config() *config.Config { return s.cfg }

func (s *Session) Now() time.Time { return s.now() }

// Load replaces both aggregates with what the store holds.
func (s *Session) Load(ctx context.Context) error {
	book, err := s.store.LoadContacts(ctx)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}
	nb, err := s.store.LoadNotes(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	s.Book, s.Notes = book, nb
	s.log.Info("session loaded",
		zap.String("location", s.store.Location()),
		zap.Int("contacts", book.Len()),
		zap.Int("notes", nb.Len()))
	return nil
}

// Save writes both aggregates to the store.
func (s *Session) Save(ctx context.Context) error {
	if err := s.store.SaveContacts(ctx, s.Book); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	if err := s.store.SaveNotes(ctx, s.Notes); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	s.log.Info("session saved",
		zap.String("location", s.store.Location()),
		zap.Int("contacts", s.Book.Len()),
		zap.Int("notes", s.Notes.Len()))
	return nil
}

func (s *Session) Close() error {
	return s.store.Close()
}
