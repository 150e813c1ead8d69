package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jeanpaul/assistant/internal/contacts"
	"github.com/jeanpaul/assistant/internal/notes"
)

var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS contacts (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	email    TEXT,
	address  TEXT,
	birthday TEXT
);
CREATE TABLE IF NOT EXISTS phones (
	contact_position INTEGER NOT NULL,
	position         INTEGER NOT NULL,
	value            TEXT NOT NULL,
	PRIMARY KEY (contact_position, position)
);
CREATE TABLE IF NOT EXISTS notes (
	position INTEGER PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	contact  TEXT NOT NULL,
	text     TEXT NOT NULL,
	tags     TEXT
);
`

// SQLiteStore keeps both aggregates in one database file. Every save
// rewrites the aggregate's tables inside a single transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  *zap.Logger
	now  func() time.Time
}

func NewSQLiteStore(path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &SQLiteStore{db: db, path: path, log: log, now: time.Now}, nil
}

func (s *SQLiteStore) Location() string { return s.path }

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) LoadContacts(ctx context.Context) (*contacts.AddressBook, error) {
	snap := ContactsSnapshot{Version: SchemaVersion}

	rows, err := s.db.QueryContext(ctx, `SELECT position, name, email, address, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	byPos := make(map[int64]int)
	for rows.Next() {
		var (
			pos                  int64
			doc                  ContactDoc
			email, address, bday sql.NullString
		)
		if err := rows.Scan(&pos, &doc.Name, &email, &address, &bday); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		doc.Email = nullable(email)
		doc.Address = nullable(address)
		doc.Birthday = nullable(bday)
		byPos[pos] = len(snap.Contacts)
		snap.Contacts = append(snap.Contacts, doc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	phoneRows, err := s.db.QueryContext(ctx, `SELECT contact_position, value FROM phones ORDER BY contact_position, position`)
	if err != nil {
		return nil, fmt.Errorf("query phones: %w", err)
	}
	defer phoneRows.Close()
	for phoneRows.Next() {
		var (
			pos   int64
			value string
		)
		if err := phoneRows.Scan(&pos, &value); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		if i, ok := byPos[pos]; ok {
			snap.Contacts[i].Phones = append(snap.Contacts[i].Phones, value)
		}
	}
	if err := phoneRows.Err(); err != nil {
		return nil, err
	}

	book, err := RestoreContacts(snap, s.now())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.log.Info("contacts loaded", zap.String("path", s.path), zap.Int("count", book.Len()))
	return book, nil
}

func (s *SQLiteStore) SaveContacts(ctx context.Context, book *contacts.AddressBook) error {
	snap := SnapshotContacts(book, s.now())
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM phones; DELETE FROM contacts;`); err != nil {
			return err
		}
		for i, doc := range snap.Contacts {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO contacts (position, name, email, address, birthday) VALUES (?, ?, ?, ?, ?)`,
				i, doc.Name, doc.Email, doc.Address, doc.Birthday,
			); err != nil {
				return fmt.Errorf("insert contact %q: %w", doc.Name, err)
			}
			for j, p := range doc.Phones {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO phones (contact_position, position, value) VALUES (?, ?, ?)`, i, j, p,
				); err != nil {
					return fmt.Errorf("insert phone: %w", err)
				}
			}
		}
		return s.stamp(ctx, tx, "contacts_saved_at", snap.SavedAt)
	})
	if err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	s.log.Info("contacts saved", zap.String("path", s.path), zap.Int("count", book.Len()))
	return nil
}

func (s *SQLiteStore) LoadNotes(ctx context.Context) (*notes.Book, error) {
	snap := NotesSnapshot{Version: SchemaVersion}

	rows, err := s.db.QueryContext(ctx, `SELECT id, contact, text, tags FROM notes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			doc  NoteDoc
			tags sql.NullString
		)
		if err := rows.Scan(&doc.ID, &doc.Contact, &doc.Text, &tags); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &doc.Tags); err != nil {
				return nil, fmt.Errorf("decode tags of note %s: %w", doc.ID, err)
			}
		}
		snap.Notes = append(snap.Notes, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	book, err := RestoreNotes(snap)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.log.Info("notes loaded", zap.String("path", s.path), zap.Int("count", book.Len()))
	return book, nil
}

func (s *SQLiteStore) SaveNotes(ctx context.Context, book *notes.Book) error {
	snap := SnapshotNotes(book, s.now())
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
			return err
		}
		for i, doc := range snap.Notes {
			tags, err := json.Marshal(doc.Tags)
			if err != nil {
				return fmt.Errorf("failed to marshal tags: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO notes (position, id, contact, text, tags) VALUES (?, ?, ?, ?, ?)`,
				i, doc.ID, doc.Contact, doc.Text, string(tags),
			); err != nil {
				return fmt.Errorf("insert note %s: %w", doc.ID, err)
			}
		}
		return s.stamp(ctx, tx, "notes_saved_at", snap.SavedAt)
	})
	if err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	s.log.Info("notes saved", zap.String("path", s.path), zap.Int("count", book.Len()))
	return nil
}

func (s *SQLiteStore) stamp(ctx context.Context, tx *sql.Tx, key string, at *time.Time) error {
	const upsert = `INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, "schema_version", strconv.Itoa(SchemaVersion)); err != nil {
		return err
	}
	if at != nil {
		if _, err := tx.ExecContext(ctx, upsert, key, at.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
