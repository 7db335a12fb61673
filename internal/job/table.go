package job

// Table is the ordered collection of live Jobs, keyed by process-group id.
// Order is insertion order; it is the shell's sole durable concurrent
// state, observed synchronously at every drain.
type Table struct {
	jobs []*Job
}

// NewTable returns an empty job table.
func NewTable() *Table {
	return &Table{}
}

// Add appends a Job at the tail. Background jobs are assigned the next
// free job number (max existing background number + 1); a foreground job
// gets the sentinel number 0, which never participates in "most recent
// background" comparisons.
func (t *Table) Add(j *Job) {
	if j.Background {
		j.Number = t.MostRecentBackgroundNumber() + 1
	} else {
		j.Number = 0
	}
	t.jobs = append(t.jobs, j)
}

// FindByPgid performs the linear scan by pgid spec.md names as the table's
// primary lookup contract.
func (t *Table) FindByPgid(pgid int) (*Job, bool) {
	for _, j := range t.jobs {
		if j.Pgid() == pgid {
			return j, true
		}
	}
	return nil, false
}

// findByPid looks up the Job owning a given member pid. A pipeline Job's
// two members share one table row but report wait-status transitions
// under their own pids, so reconciliation needs this in addition to
// FindByPgid.
func (t *Table) findByPid(pid int) (*Job, bool) {
	for _, j := range t.jobs {
		if j.hasPid(pid) {
			return j, true
		}
	}
	return nil, false
}

// MostRecentBackgroundNumber is the max job_number over background jobs,
// or 0 if there are none.
func (t *Table) MostRecentBackgroundNumber() int {
	max := 0
	for _, j := range t.jobs {
		if j.Background && j.Number > max {
			max = j.Number
		}
	}
	return max
}

// NextJobToFG is the last (most recently inserted) non-Done job in the
// table, or false if none exists.
func (t *Table) NextJobToFG() (*Job, bool) {
	for i := len(t.jobs) - 1; i >= 0; i-- {
		if t.jobs[i].Status() != Done {
			return t.jobs[i], true
		}
	}
	return nil, false
}

// NextJobToBG is the last Stopped background job in the table, or false
// if there is no stopped job.
func (t *Table) NextJobToBG() (*Job, bool) {
	for i := len(t.jobs) - 1; i >= 0; i-- {
		j := t.jobs[i]
		if j.Background && j.Status() == Stopped {
			return j, true
		}
	}
	return nil, false
}

// RemoveByPgid unlinks the Job with the given pgid and returns it.
func (t *Table) RemoveByPgid(pgid int) (*Job, bool) {
	for i, j := range t.jobs {
		if j.Pgid() == pgid {
			t.jobs = append(t.jobs[:i], t.jobs[i+1:]...)
			return j, true
		}
	}
	return nil, false
}

// DoneJobs returns the jobs currently Done, in table order, without
// removing them.
func (t *Table) DoneJobs() []*Job {
	var out []*Job
	for _, j := range t.jobs {
		if j.Status() == Done {
			out = append(out, j)
		}
	}
	return out
}

// BackgroundJobs returns Running or Stopped background jobs, in table
// order.
func (t *Table) BackgroundJobs() []*Job {
	var out []*Job
	for _, j := range t.jobs {
		if j.Background && j.Status() != Done {
			out = append(out, j)
		}
	}
	return out
}

// PruneDone removes every Done job from the table.
func (t *Table) PruneDone() {
	kept := t.jobs[:0]
	for _, j := range t.jobs {
		if j.Status() != Done {
			kept = append(kept, j)
		}
	}
	t.jobs = kept
}

// Reconcile maps a (status, pid) pair observed from wait4 onto a state
// transition in the job table. It returns false when no progress was
// made, which is how the drain/foreground-wait loops terminate.
//
//   - pid <= 0: no progress, return false immediately.
//   - stopped: mark the owning job's member Stopped. If the stop signal
//     was SIGTSTP/SIGSTOP and the job was the foreground job, relabel it
//     background and reinsert it at the tail so it gets a fresh job
//     number.
//   - otherwise (exited or terminated by signal): mark the member Done.
func (t *Table) Reconcile(pid int, stopped bool, jobControlStop bool) bool {
	if pid <= 0 {
		return false
	}
	j, ok := t.findByPid(pid)
	if !ok {
		return true
	}
	if stopped {
		j.setPidStatus(pid, Stopped)
		if jobControlStop && !j.Background {
			t.RemoveByPgid(j.Pgid())
			j.Background = true
			t.Add(j)
		}
		return true
	}
	j.setPidStatus(pid, Done)
	return true
}

// Jobs returns a snapshot of the table in insertion order.
func (t *Table) Jobs() []*Job {
	out := make([]*Job, len(t.jobs))
	copy(out, t.jobs)
	return out
}

// Len reports how many jobs are currently tracked.
func (t *Table) Len() int {
	return len(t.jobs)
}
