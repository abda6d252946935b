// Package console runs the interactive grade menu over a text stream.
//
// The loop has a single state, awaiting a menu choice, which every command
// returns to. Exit, end of input and context cancellation are the only ways
// out. Nothing is written anywhere but the output stream.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gradebook/internal/gradebook"
	"gradebook/internal/logging"
	"gradebook/internal/store"
)

// Session owns the menu loop for one store.
type Session struct {
	store    store.Store
	in       io.Reader
	out      io.Writer
	menu     []Command
	commands map[string]Command
	lines    *lineReader
}

// NewSession builds a session over the default menu.
func NewSession(st store.Store, in io.Reader, out io.Writer) *Session {
	return NewSessionWithCommands(st, in, out, DefaultCommands())
}

// NewSessionWithCommands builds a session over a custom menu.
// Later entries win when keys repeat.
func NewSessionWithCommands(st store.Store, in io.Reader, out io.Writer, menu []Command) *Session {
	commands := make(map[string]Command, len(menu))
	for _, c := range menu {
		commands[c.Key] = c
	}
	return &Session{
		store:    st,
		in:       in,
		out:      out,
		menu:     menu,
		commands: commands,
	}
}

// Run drives the loop until Exit is chosen or input ends, in which case it
// returns nil. A store failure ends the loop with that error; cancellation
// returns ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines = newLineReader(ctx, s.in)

	logging.Session("session started")
	defer logging.Session("session ended")

	for {
		s.printMenu()

		choice, err := s.prompt(ctx, gradebook.PromptChoice)
		if err != nil {
			return s.finish(err)
		}

		cmd, ok := s.commands[choice]
		if !ok {
			logging.ConsoleDebug("invalid choice %q", choice)
			s.println(gradebook.MsgInvalidChoice)
			continue
		}

		logging.ConsoleDebug("dispatch %q (%s)", choice, cmd.Label)
		done, err := cmd.Run(ctx, s)
		if err != nil {
			return s.finish(err)
		}
		if done {
			return nil
		}
	}
}

// finish maps the error that stopped the loop to Run's result.
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		// Move past the dangling prompt.
		s.println()
		logging.ConsoleDebug("input closed")
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logging.Get(logging.CategoryConsole).Error("session aborted: %v", err)
	return err
}

func (s *Session) printMenu() {
	s.println()
	for _, c := range s.menu {
		fmt.Fprintf(s.out, "%s. %s\n", c.Key, c.Label)
	}
}

// prompt writes label without a newline and reads the reply.
func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.lines.next(ctx)
}

func (s *Session) println(a ...interface{}) {
	fmt.Fprintln(s.out, a...)
}
