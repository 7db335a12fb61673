// Command myshell is an interactive job-control shell: tokenize, parse,
// launch, and track foreground/background jobs against the controlling
// terminal, with fg/bg/jobs built-ins.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"myshell/internal/config"
	"myshell/internal/diagnostics"
	"myshell/internal/shell"
)

// TerminalError reports that the shell could not establish itself as its
// own process-group leader at startup. Unlike every other terminal-
// control failure (which is best-effort and silently tolerated because
// SIGTTOU is ignored), this one is fatal: without it, nothing downstream
// about job control is meaningful.
type TerminalError struct {
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("could not become process-group leader: %v", e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

func main() {
	if err := run(); err != nil {
		diagnostics.Fprintf(os.Stderr, "yash", "%v", err)
		os.Exit(1)
	}
}

func run() error {
	ttyFd := int(os.Stdin.Fd())

	pid := os.Getpid()
	if err := unix.Setpgid(pid, pid); err != nil {
		return &TerminalError{Err: err}
	}
	shellPgid := pid

	signal.Ignore(unix.SIGINT, unix.SIGTSTP, unix.SIGTTOU, unix.SIGTTIN, unix.SIGQUIT)

	if err := unix.IoctlSetInt(ttyFd, unix.TIOCSPGRP, shellPgid); err != nil {
		// Best-effort: a non-interactive stdin (e.g. a pipe in tests) has
		// no controlling terminal to hand off, and spec.md's terminal
		// calls are tolerated to fail everywhere but the setpgid above.
		_ = err
	}

	cfgPath := os.Getenv("YASH_CONFIG")
	if cfgPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfgPath = home + "/.yashrc"
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sh, err := shell.New(cfg, ttyFd, shellPgid)
	if err != nil {
		return err
	}
	defer sh.Close()

	sh.Run()
	return nil
}
