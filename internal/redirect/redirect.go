// Package redirect opens the files a ProcessSpec names for its standard
// streams (spec §4.4). Since process creation below is done with a fused
// fork+exec (golang.org/x/sys/unix has no safe hook for arbitrary Go code
// between a raw fork and exec), the opens happen here in the parent,
// before the child exists, and the resulting *os.Files are handed to the
// launcher to place at fds 0/1/2 in the child's ProcAttr.Files.
package redirect

import (
	"fmt"
	"os"

	"myshell/internal/job"
)

const outputMode = 0664

// RedirectError wraps a failed open of a redirection target. Its Error()
// text is the shell's full diagnostic body (everything after the
// "-<progName>: " prefix); the single call site in internal/shell prints
// it, so nothing in this package writes to stderr itself.
type RedirectError struct {
	File string
	Err  error
	msg  string
}

func (e *RedirectError) Error() string {
	return e.msg
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// Files holds the three standard streams resolved for one process, ready
// to be handed to the launcher. Nil means "inherit the shell's own
// stream".
type Files struct {
	Stdin, Stdout, Stderr *os.File
}

// Close releases any file this ProcessSpec opened (idempotent with a nil
// receiver field).
func (f *Files) Close() {
	if f == nil {
		return
	}
	for _, fl := range []*os.File{f.Stdin, f.Stdout, f.Stderr} {
		if fl != nil {
			fl.Close()
		}
	}
}

// Open resolves a ProcessSpec's redirections in the exact order spec.md
// prescribes: error, then input, then output. On the first failure,
// whatever was already opened is closed ("nuke") and a *RedirectError is
// returned, whose Error() text is the shell's canonical diagnostic body
// — matching the seed scenario `cat < missing` -> `-yash: missing: No
// such file or directory`. The caller prints it; this package never
// writes to stderr itself, so a failure here produces exactly one
// diagnostic line, not two.
func Open(spec *job.ProcessSpec) (*Files, error) {
	f := &Files{}

	if spec.ErrorFile != "" {
		file, err := os.OpenFile(spec.ErrorFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputMode)
		if err != nil {
			f.Close()
			return nil, &RedirectError{File: spec.ErrorFile, Err: err, msg: fmt.Sprintf("%s: %v", spec.ErrorFile, err)}
		}
		f.Stderr = file
	}

	if spec.InputFile != "" {
		file, err := os.OpenFile(spec.InputFile, os.O_RDONLY, 0)
		if err != nil {
			f.Close()
			return nil, &RedirectError{File: spec.InputFile, Err: err, msg: fmt.Sprintf("%s: No such file or directory", spec.InputFile)}
		}
		f.Stdin = file
	}

	if spec.OutputFile != "" {
		file, err := os.OpenFile(spec.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputMode)
		if err != nil {
			f.Close()
			return nil, &RedirectError{File: spec.OutputFile, Err: err, msg: fmt.Sprintf("%s: %v", spec.OutputFile, err)}
		}
		f.Stdout = file
	}

	return f, nil
}
