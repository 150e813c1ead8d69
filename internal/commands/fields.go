package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeanpaul/assistant/internal/contacts"
)

// recordOp resolves the contact named by args[0] and applies op to it.
func recordOp(s *Session, args []string, min int, op func(rec *contacts.Record, rest []string) (Reply, error)) (Reply, error) {
	if err := need(args, min); err != nil {
		return Reply{}, err
	}
	rec, err := s.Book.MustFind(args[0])
	if err != nil {
		return Reply{}, err
	}
	return op(rec, args[1:])
}

func addEmail(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 2); err != nil {
		return Reply{}, err
	}
	return recordOp(s, args, 2, func(rec *contacts.Record, rest []string) (Reply, error) {
		if err := rec.AddEmail(rest[0]); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Email added."}, nil
	})
}

func editEmail(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 2); err != nil {
		return Reply{}, err
	}
	return recordOp(s, args, 2, func(rec *contacts.Record, rest []string) (Reply, error) {
		if err := rec.EditEmail(rest[0]); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Email updated."}, nil
	})
}

func showEmail(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	return recordOp(s, args, 1, func(rec *contacts.Record, _ []string) (Reply, error) {
		v, ok := rec.Email()
		if !ok {
			return Reply{}, contacts.ErrEmailNotSet
		}
		return Reply{Text: fmt.Sprintf("%s's email is %s.", rec.Name(), v)}, nil
	})
}

func removeEmail(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	return recordOp(s, args, 1, func(rec *contacts.Record, _ []string) (Reply, error) {
		if err := rec.RemoveEmail(); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Email removed."}, nil
	})
}

// Addresses may contain spaces, so everything after the name is joined back.

func addAddress(_ context.Context, s *Session, args []string) (Reply, error) {
	return recordOp(s, args, 2, func(rec *contacts.Record, rest []string) (Reply, error) {
		if err := rec.AddAddress(strings.Join(rest, " ")); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Address added."}, nil
	})
}

func editAddress(_ context.Context, s *Session, args []string) (Reply, error) {
	return recordOp(s, args, 2, func(rec *contacts.Record, rest []string) (Reply, error) {
		if err := rec.EditAddress(strings.Join(rest, " ")); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Address updated."}, nil
	})
}

func showAddress(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	return recordOp(s, args, 1, func(rec *contacts.Record, _ []string) (Reply, error) {
		v, ok := rec.Address()
		if !ok {
			return Reply{}, contacts.ErrAddressNotSet
		}
		return Reply{Text: fmt.Sprintf("%s's address is %s.", rec.Name(), v)}, nil
	})
}

func removeAddress(_ context.Context, s *Session, args []string) (Reply, error) {
	if err := exactly(args, 1); err != nil {
		return Reply{}, err
	}
	return recordOp(s, args, 1, func(rec *contacts.Record, _ []string) (Reply, error) {
		if err := rec.RemoveAddress(); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Address removed."}, nil
	})
}
