// Package launch creates one child process group per job (spec §4.5): a
// single process for a plain command, two for a pipeline, each placed in
// a shared new process group and, if the job is foreground, granted the
// controlling terminal atomically as part of the same fork+exec.
//
// golang.org/x/sys/unix (and the stdlib syscall package it aliases for
// SysProcAttr) exposes no hook to run arbitrary Go code between a raw
// fork and exec once a program has more than one OS thread running, so
// there is no literal equivalent of "fork, then run a child preamble,
// then exec" here. Instead:
//   - redirection files are opened in the parent (package redirect) and
//     handed to the child via ProcAttr.Files, which the kernel installs
//     onto fds 0/1/2 as part of the same clone+exec sequence spec.md
//     describes as "rewire the standard descriptors";
//   - Setpgid/Pgid/Foreground/Ctty ask the kernel to create or join the
//     process group and hand it the controlling terminal before exec,
//     closing the race spec.md §5 calls out;
//   - Cloneflags: CLONE_CLEAR_SIGHAND resets every signal disposition in
//     the child to default before exec, standing in for the literal
//     "reset SIGINT, SIGTSTP to default" child preamble (see DESIGN.md
//     for the SIGTTOU caveat this implies).
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"myshell/internal/job"
	"myshell/internal/redirect"
)

// ExecError reports that a command name could not be resolved to an
// executable on $PATH.
type ExecError struct {
	Name string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Name)
}

func (e *ExecError) Unwrap() error { return e.Err }

// ForkError reports that the kernel fork+exec call itself failed (e.g.
// resource limits), as distinct from the command simply not existing.
type ForkError struct {
	Err error
}

func (e *ForkError) Error() string {
	return fmt.Sprintf("fork/exec failed: %v", e.Err)
}

func (e *ForkError) Unwrap() error { return e.Err }

// Launcher spawns job process groups against one controlling terminal.
type Launcher struct {
	TTYFd int
}

// New builds a Launcher. ttyFd is the fd used both for Ctty (handing off
// the controlling terminal) and for later tcsetpgrp calls.
func New(ttyFd int) *Launcher {
	return &Launcher{TTYFd: ttyFd}
}

// Launch starts the one or two processes named by parsed.First/Second and
// returns their pids (pids[0] is always the resulting pgid). The caller
// is responsible for wrapping the result into a job.Job and inserting it
// into the table.
func (l *Launcher) Launch(parsed *job.Job, foreground bool) ([]int, error) {
	if parsed.IsPipeline() {
		return l.launchPipeline(parsed.First, parsed.Second, foreground)
	}
	pid, err := l.launchSingle(parsed.First, 0, foreground)
	if err != nil {
		return nil, err
	}
	return []int{pid}, nil
}

// launchSingle resolves argv[0], opens its redirections, and fork+execs
// it into process group pgid (0 means "new group rooted at this child").
func (l *Launcher) launchSingle(spec *job.ProcessSpec, pgid int, foreground bool) (int, error) {
	path, err := exec.LookPath(spec.Argv[0])
	if err != nil {
		return 0, &ExecError{Name: spec.Argv[0], Err: err}
	}

	files, err := redirect.Open(spec)
	if err != nil {
		return 0, err
	}
	defer files.Close()

	stdin := uintptr(os.Stdin.Fd())
	if files.Stdin != nil {
		stdin = files.Stdin.Fd()
	}
	stdout := uintptr(os.Stdout.Fd())
	if files.Stdout != nil {
		stdout = files.Stdout.Fd()
	}
	stderr := uintptr(os.Stderr.Fd())
	if files.Stderr != nil {
		stderr = files.Stderr.Fd()
	}

	attr := l.procAttr(stdin, stdout, stderr, pgid, foreground)
	pid, err := syscall.ForkExec(path, spec.Argv, attr)
	if err != nil {
		return 0, &ForkError{Err: err}
	}
	return pid, nil
}

// launchPipeline wires a pipe between two processes sharing one process
// group. There is no separate supervisor OS process (see package doc and
// DESIGN.md): both children are direct children of the shell, and the
// caller tracks both pids under one job.Job so the table still exposes a
// single row per pipeline.
func (l *Launcher) launchPipeline(producerSpec, consumerSpec *job.ProcessSpec, foreground bool) ([]int, error) {
	producerPath, err := exec.LookPath(producerSpec.Argv[0])
	if err != nil {
		return nil, &ExecError{Name: producerSpec.Argv[0], Err: err}
	}
	consumerPath, err := exec.LookPath(consumerSpec.Argv[0])
	if err != nil {
		return nil, &ExecError{Name: consumerSpec.Argv[0], Err: err}
	}

	producerFiles, err := redirect.Open(producerSpec)
	if err != nil {
		return nil, err
	}
	defer producerFiles.Close()

	consumerFiles, err := redirect.Open(consumerSpec)
	if err != nil {
		return nil, err
	}
	defer consumerFiles.Close()

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}
	defer r.Close()
	defer w.Close()

	producerStdout := w.Fd()
	if producerFiles.Stdout != nil {
		producerStdout = producerFiles.Stdout.Fd()
	}
	producerStdin := uintptr(os.Stdin.Fd())
	if producerFiles.Stdin != nil {
		producerStdin = producerFiles.Stdin.Fd()
	}
	producerStderr := uintptr(os.Stderr.Fd())
	if producerFiles.Stderr != nil {
		producerStderr = producerFiles.Stderr.Fd()
	}

	consumerStdin := r.Fd()
	if consumerFiles.Stdin != nil {
		consumerStdin = consumerFiles.Stdin.Fd()
	}
	consumerStdout := uintptr(os.Stdout.Fd())
	if consumerFiles.Stdout != nil {
		consumerStdout = consumerFiles.Stdout.Fd()
	}
	consumerStderr := uintptr(os.Stderr.Fd())
	if consumerFiles.Stderr != nil {
		consumerStderr = consumerFiles.Stderr.Fd()
	}

	producerAttr := l.procAttr(producerStdin, producerStdout, producerStderr, 0, foreground)
	producerPid, err := syscall.ForkExec(producerPath, producerSpec.Argv, producerAttr)
	if err != nil {
		return nil, &ForkError{Err: err}
	}

	consumerAttr := l.procAttr(consumerStdin, consumerStdout, consumerStderr, producerPid, foreground)
	consumerPid, err := syscall.ForkExec(consumerPath, consumerSpec.Argv, consumerAttr)
	if err != nil {
		// The producer is already running as an orphaned member of its
		// own fresh process group; don't leave it behind.
		syscall.Kill(-producerPid, syscall.SIGKILL)
		var ws syscall.WaitStatus
		syscall.Wait4(producerPid, &ws, 0, nil)
		return nil, &ForkError{Err: err}
	}

	return []int{producerPid, consumerPid}, nil
}

// procAttr builds the ProcAttr shared by every spawn path. pgid == 0 means
// "new group rooted at this child"; pgid > 0 means "join that group".
func (l *Launcher) procAttr(stdin, stdout, stderr uintptr, pgid int, foreground bool) *syscall.ProcAttr {
	return &syscall.ProcAttr{
		Env:   os.Environ(),
		Files: []uintptr{stdin, stdout, stderr},
		Sys: &syscall.SysProcAttr{
			Setpgid:    true,
			Pgid:       pgid,
			Foreground: foreground,
			Ctty:       l.TTYFd,
			Cloneflags: syscall.CLONE_CLEAR_SIGHAND,
		},
	}
}
