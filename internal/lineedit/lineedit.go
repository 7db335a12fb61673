// Package lineedit wraps github.com/chzyer/readline, the "line-editor
// collaborator that yields one command string per call or an
// end-of-input sentinel" spec.md declares out of scope (spec §1).
// Grounded on sdfpt05-shell/main.go and
// sdfpt05-shell/internal/shell/shell.go, both of which build a
// readline.Instance the same way.
package lineedit

import (
	"io"

	"github.com/chzyer/readline"
)

// EOF is the end-of-input sentinel the prompt loop checks for.
var EOF = io.EOF

// Editor yields one command line per call.
type Editor struct {
	instance *readline.Instance
}

// New constructs an Editor with the given prompt. historyFile may be
// empty, in which case no history is persisted across runs.
func New(prompt, historyFile string) (*Editor, error) {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		return nil, err
	}
	return &Editor{instance: instance}, nil
}

// Readline returns the next line of input. It returns io.EOF on Ctrl-D
// and ErrInterrupted (translated from readline.ErrInterrupt, with an
// empty line) on Ctrl-C while composing a line.
func (e *Editor) Readline() (string, error) {
	line, err := e.instance.Readline()
	if err == readline.ErrInterrupt {
		return "", ErrInterrupted
	}
	return line, err
}

// ErrInterrupted reports that the user cancelled the in-progress line
// with Ctrl-C; the prompt loop treats this as "start a fresh prompt", not
// as a signal delivered to any foreground job (none is running while the
// editor itself is reading).
var ErrInterrupted = errInterrupted{}

type errInterrupted struct{}

func (errInterrupted) Error() string { return "line interrupted" }

// Close releases the underlying terminal state.
func (e *Editor) Close() error {
	return e.instance.Close()
}
