// Package console implements the confirmation prompt on standard
// input. It is the publish step's only suspension point.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
)

// Ensure Prompter implements the interface.
var _ driven.Prompter = (*Prompter)(nil)

// Prompter asks yes/no questions on the terminal. With assumeYes set
// (the --yes flag) every question is answered affirmatively without
// prompting, which is what cron jobs want.
type Prompter struct {
	assumeYes bool

	in  io.Reader
	out io.Writer

	// isTerminal is swappable for tests.
	isTerminal func() bool
}

// New creates a prompter on stdin/stdout.
func New(assumeYes bool) *Prompter {
	return &Prompter{
		assumeYes: assumeYes,
		in:        os.Stdin,
		out:       os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Confirm prints the question and blocks until a full line is read.
// Only an explicit "y" or "yes" (case-insensitive) counts as
// affirmative. When stdin is not a terminal and --yes was not given,
// it refuses rather than silently publishing.
func (p *Prompter) Confirm(question string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}

	if !p.isTerminal() {
		return false, fmt.Errorf("standard input is not a terminal; pass --yes to confirm non-interactively")
	}

	fmt.Fprint(p.out, question)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
