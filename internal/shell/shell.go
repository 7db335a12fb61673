// Package shell drives the prompt loop: read a line, parse it, either run
// a built-in or launch a job, and reconcile process state before each new
// prompt (spec §2, §4.8). It is the successor to the teacher's
// internal/repl package, rebuilt around an owned job.Table and
// termctl.Coordinator instead of a background goroutine racing the
// prompt loop over package-level state.
package shell

import (
	"errors"
	"fmt"
	"os"

	"myshell/internal/builtins"
	"myshell/internal/config"
	"myshell/internal/diagnostics"
	"myshell/internal/job"
	"myshell/internal/launch"
	"myshell/internal/lineedit"
	"myshell/internal/parser"
	"myshell/internal/termctl"
	"myshell/internal/token"
)

const prompt = "# "

// Shell owns every piece of state the prompt loop touches.
type Shell struct {
	progName string
	editor   *lineedit.Editor
	table    *job.Table
	launcher *launch.Launcher
	coord    *termctl.Coordinator
}

// New wires a Shell from a loaded configuration and the resolved
// controlling-terminal fd and shell process-group id (spec §7).
func New(cfg *config.Config, ttyFd, shellPgid int) (*Shell, error) {
	historyFile := ""
	if cfg.HistoryPersistenceEnabled() {
		historyFile = cfg.HistoryFile
	}

	editor, err := lineedit.New(prompt, historyFile)
	if err != nil {
		return nil, fmt.Errorf("line editor: %w", err)
	}

	return &Shell{
		progName: cfg.ProgramName,
		editor:   editor,
		table:    job.NewTable(),
		launcher: launch.New(ttyFd),
		coord:    termctl.New(ttyFd, shellPgid),
	}, nil
}

// Close releases the line editor's terminal state.
func (s *Shell) Close() error {
	return s.editor.Close()
}

// Run is the prompt loop. It returns when input is exhausted (Ctrl-D).
func (s *Shell) Run() {
	for {
		s.coord.Drain(s.table)
		builtins.NotifyDone(s.table)

		line, err := s.editor.Readline()
		if err != nil {
			if errors.Is(err, lineedit.ErrInterrupted) {
				continue
			}
			if errors.Is(err, lineedit.EOF) {
				return
			}
			diagnostics.Fprintf(os.Stderr, s.progName, "%v", err)
			return
		}

		s.execute(line)
	}
}

// execute dispatches one raw input line: a built-in, a parsed job, a
// parse error, or nothing at all for blank input.
func (s *Shell) execute(line string) {
	tokens := token.Tokenize(line)
	if len(tokens) == 0 {
		return
	}

	if builtins.IsBuiltin(line) {
		switch line {
		case builtins.FgName:
			builtins.Fg(s.table, s.coord)
		case builtins.BgName:
			builtins.Bg(s.table, s.coord)
		case builtins.JobsName:
			builtins.Jobs(s.table, s.coord)
		}
		return
	}

	parsed, err := parser.Parse(tokens)
	if err != nil {
		diagnostics.Fprintf(os.Stdout, s.progName, "%v", err)
		return
	}
	if parsed == nil {
		return
	}

	pids, err := s.launcher.Launch(parsed, !parsed.Background)
	if err != nil {
		diagnostics.Fprintf(os.Stderr, s.progName, "%v", err)
		return
	}

	j := job.New(line, parsed.Background, parsed.First, parsed.Second, pids)
	s.table.Add(j)

	if parsed.Background {
		return
	}

	s.coord.ForegroundWait(s.table, j)
}
