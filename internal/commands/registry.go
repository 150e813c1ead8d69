// Package commands maps one line of user input onto operations of the
// address book and notes book. Front ends (TUI, headless) only render the
// returned Reply.
package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jeanpaul/assistant/internal/errs"
)

// Status tells a front end how to style a Reply.
type Status int

const (
	StatusOK Status = iota
	StatusNotice
	StatusError
)

// Table is tabular output; front ends choose the layout.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

type Reply struct {
	Text   string
	Table  *Table
	Status Status
	// Markdown, when set, is a richer rendering of Text for front ends
	// that can display it.
	Markdown string
	// Quit asks the front end to stop after showing the reply.
	Quit bool
}

// Handler runs one command. Errors built with the errs package are shown to
// the user verbatim; anything else is reported as unexpected.
type Handler func(ctx context.Context, s *Session, args []string) (Reply, error)

type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Run         Handler
}

// errUsage makes Dispatch answer with the command's usage line.
var errUsage = errs.New(errs.ErrInvalidInput, "wrong number of arguments")

type Registry struct {
	commands map[string]*Command
	order    []*Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds cmd under its name and aliases. Later registrations win.
func (r *Registry) Register(cmd Command) {
	c := &cmd
	r.order = append(r.order, c)
	r.commands[c.Name] = c
	for _, a := range c.Aliases {
		r.commands[a] = c
	}
}

func (r *Registry) Get(name string) (*Command, bool) {
	c, ok := r.commands[strings.ToLower(name)]
	return c, ok
}

// Commands returns commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.order))
	for i, c := range r.order {
		out[i] = *c
	}
	return out
}

// Names returns every name and alias, sorted. Used for completion.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseInput splits a line on whitespace and lowercases the command word.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Dispatch runs one line of input against s. It never returns an error: every
// failure becomes a StatusError reply and the session carries on.
func (r *Registry) Dispatch(ctx context.Context, s *Session, line string) Reply {
	name, args := ParseInput(line)
	if name == "" {
		return Reply{Text: "Please enter a command.", Status: StatusNotice}
	}
	cmd, ok := r.Get(name)
	if !ok {
		return Reply{Text: fmt.Sprintf("Invalid command %q. Type 'help' for a list of commands.", name), Status: StatusError}
	}

	reply, err := cmd.Run(ctx, s, args)
	if err != nil {
		return r.failure(s, cmd, err)
	}
	s.log.Debug("command done", zap.String("command", cmd.Name), zap.Int("args", len(args)))
	return reply
}

func (r *Registry) failure(s *Session, cmd *Command, err error) Reply {
	if errors.Is(err, errUsage) {
		return Reply{Text: "Invalid input. Usage: " + cmd.Usage, Status: StatusError}
	}
	var e *errs.Error
	if errors.As(err, &e) {
		s.log.Debug("command rejected", zap.String("command", cmd.Name), zap.Error(err))
		return Reply{Text: Message(err), Status: StatusError}
	}
	s.log.Error("command failed", zap.String("command", cmd.Name), zap.Error(err))
	return Reply{Text: "An unexpected error occurred: " + err.Error(), Status: StatusError}
}

// Message turns an error into a sentence: capitalized, with a full stop.
func Message(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Something went wrong."
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

func need(args []string, min int) error {
	if len(args) < min {
		return errUsage
	}
	return nil
}

func exactly(args []string, n int) error {
	if len(args) != n {
		return errUsage
	}
	return nil
}
