// Package termctl owns the controlling-terminal handoff and the
// wait/reconcile loop (spec §4.6). It is the only place that calls
// tcsetpgrp (via TIOCSPGRP) or wait4 after a job has been launched.
package termctl

import (
	"golang.org/x/sys/unix"

	"myshell/internal/job"
)

// Coordinator hands the controlling terminal between the shell and
// whichever job is currently in the foreground, and reconciles wait4
// results into the job table.
type Coordinator struct {
	TTYFd     int
	ShellPgid int
}

// New builds a Coordinator for the given controlling-terminal fd and
// shell process-group id.
func New(ttyFd, shellPgid int) *Coordinator {
	return &Coordinator{TTYFd: ttyFd, ShellPgid: shellPgid}
}

// grantTerminal hands the controlling terminal to pgid. Best-effort: a
// failure here is tolerated silently, since SIGTTOU is ignored by the
// shell and nothing downstream depends on this call succeeding to make
// progress (spec §7).
func (c *Coordinator) grantTerminal(pgid int) {
	_ = unix.IoctlSetInt(c.TTYFd, unix.TIOCSPGRP, pgid)
}

// reclaim returns the controlling terminal to the shell's own process
// group.
func (c *Coordinator) reclaim() {
	c.grantTerminal(c.ShellPgid)
}

// Drain repeatedly calls wait4(-1, WNOHANG|WUNTRACED), reconciling each
// result into table, until no further progress is reported. It is called
// at each prompt and before each built-in, and never blocks.
func (c *Coordinator) Drain(table *job.Table) {
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG|unix.WUNTRACED, nil)
		if err != nil || pid <= 0 {
			return
		}
		if !table.Reconcile(pid, ws.Stopped(), isJobControlStop(ws)) {
			return
		}
	}
}

// ForegroundWait grants the terminal to target's pgid, then blocks on
// wait4(-1, WUNTRACED) until reconcile reports no progress or target
// itself leaves Running, finally reclaiming the terminal for the shell.
// It also drains any other child that happens to change state in the
// meantime, matching the table-wide reconciliation spec.md requires.
func (c *Coordinator) ForegroundWait(table *job.Table, target *job.Job) {
	c.grantTerminal(target.Pgid())
	defer c.reclaim()

	for target.Status() == job.Running {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WUNTRACED, nil)
		if err != nil || pid <= 0 {
			return
		}
		if !table.Reconcile(pid, ws.Stopped(), isJobControlStop(ws)) {
			return
		}
	}
}

// isJobControlStop reports whether a stop was caused by SIGTSTP or
// SIGSTOP, the two signals that relabel a foreground job as background
// per spec.md §4.3.
func isJobControlStop(ws unix.WaitStatus) bool {
	if !ws.Stopped() {
		return false
	}
	sig := ws.StopSignal()
	return sig == unix.SIGTSTP || sig == unix.SIGSTOP
}
