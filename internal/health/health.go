package health

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jeanpaul/assistant/internal/config"
	"github.com/jeanpaul/assistant/internal/storage"
)

type Status struct {
	Name    string
	OK      bool
	Detail  string
	Error   string
	Latency time.Duration
}

// Check runs every diagnostic for cfg and store, in display order.
func Check(ctx context.Context, cfg *config.Config, store storage.Store) []Status {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return []Status{
		timed("config", func() Status { return checkConfig(cfg) }),
		timed("data dir", func() Status { return checkDir(cfg.DataDir) }),
		timed("storage", func() Status { return checkStore(ctx, store) }),
	}
}

// Healthy reports whether every status is OK.
func Healthy(list []Status) bool {
	for _, s := range list {
		if !s.OK {
			return false
		}
	}
	return true
}

func timed(name string, fn func() Status) Status {
	start := time.Now()
	s := fn()
	s.Name = name
	s.Latency = time.Since(start)
	return s
}

func checkConfig(cfg *config.Config) Status {
	if err := cfg.Validate(); err != nil {
		return Status{Error: err.Error()}
	}
	return Status{OK: true, Detail: fmt.Sprintf("%s backend, %d-day birthday window", cfg.Storage.Backend, cfg.Birthdays.DefaultDays)}
}

// checkDir makes sure dir exists and a file can be created in it.
func checkDir(dir string) Status {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Status{Error: fmt.Sprintf("cannot create %s: %s", dir, friendlyError(err))}
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return Status{Error: fmt.Sprintf("cannot write to %s: %s", dir, friendlyError(err))}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return Status{OK: true, Detail: filepath.Clean(dir)}
}

func checkStore(ctx context.Context, store storage.Store) Status {
	book, err := store.LoadContacts(ctx)
	if err != nil {
		return Status{Error: fmt.Sprintf("contacts at %s: %s", store.Location(), friendlyError(err))}
	}
	nb, err := store.LoadNotes(ctx)
	if err != nil {
		return Status{Error: fmt.Sprintf("notes: %s", friendlyError(err))}
	}
	return Status{OK: true, Detail: fmt.Sprintf("%d contacts, %d notes at %s", book.Len(), nb.Len(), store.Location())}
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(err, storage.ErrUnsupportedVersion):
		return "snapshot was written by a newer version of assistant"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	}
	return err.Error()
}
