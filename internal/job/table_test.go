package job

import "testing"

func single(pgid int, background bool) *Job {
	return New("cmd", background, &ProcessSpec{Argv: []string{"cmd"}}, nil, []int{pgid})
}

func TestAdd_AssignsJobNumbers(t *testing.T) {
	tbl := NewTable()

	fg := single(100, false)
	tbl.Add(fg)
	if fg.Number != 0 {
		t.Errorf("expected foreground sentinel number 0, got %d", fg.Number)
	}

	bg1 := single(101, true)
	tbl.Add(bg1)
	if bg1.Number != 1 {
		t.Errorf("expected first background job numbered 1, got %d", bg1.Number)
	}

	bg2 := single(102, true)
	tbl.Add(bg2)
	if bg2.Number != 2 {
		t.Errorf("expected second background job numbered 2, got %d", bg2.Number)
	}
}

func TestFindByPgid(t *testing.T) {
	tbl := NewTable()
	j := single(100, true)
	tbl.Add(j)

	got, ok := tbl.FindByPgid(100)
	if !ok || got != j {
		t.Fatalf("expected to find job by pgid 100")
	}

	if _, ok := tbl.FindByPgid(999); ok {
		t.Errorf("expected no job for unknown pgid")
	}
}

func TestMostRecentBackgroundNumber(t *testing.T) {
	tbl := NewTable()
	if got := tbl.MostRecentBackgroundNumber(); got != 0 {
		t.Fatalf("expected 0 on empty table, got %d", got)
	}

	tbl.Add(single(100, true))
	tbl.Add(single(101, true))
	if got := tbl.MostRecentBackgroundNumber(); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestNextJobToFG_SkipsDone(t *testing.T) {
	tbl := NewTable()
	done := single(100, true)
	done.setPidStatus(100, Done)
	tbl.Add(done)

	running := single(101, true)
	tbl.Add(running)

	got, ok := tbl.NextJobToFG()
	if !ok || got != running {
		t.Fatalf("expected the non-Done job, got %+v, ok=%v", got, ok)
	}
}

func TestNextJobToFG_NoneAvailable(t *testing.T) {
	tbl := NewTable()
	done := single(100, true)
	done.setPidStatus(100, Done)
	tbl.Add(done)

	if _, ok := tbl.NextJobToFG(); ok {
		t.Errorf("expected no job to foreground when every job is Done")
	}
}

func TestNextJobToBG_OnlyStoppedBackground(t *testing.T) {
	tbl := NewTable()

	running := single(100, true)
	tbl.Add(running)

	stopped := single(101, true)
	stopped.setPidStatus(101, Stopped)
	tbl.Add(stopped)

	got, ok := tbl.NextJobToBG()
	if !ok || got != stopped {
		t.Fatalf("expected the stopped background job, got %+v, ok=%v", got, ok)
	}
}

func TestDoneJobsAndPrune(t *testing.T) {
	tbl := NewTable()
	running := single(100, true)
	tbl.Add(running)

	done := single(101, true)
	done.setPidStatus(101, Done)
	tbl.Add(done)

	got := tbl.DoneJobs()
	if len(got) != 1 || got[0] != done {
		t.Fatalf("expected exactly the Done job, got %+v", got)
	}

	tbl.PruneDone()
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 job remaining after prune, got %d", tbl.Len())
	}
	if _, ok := tbl.FindByPgid(101); ok {
		t.Errorf("expected Done job removed from table")
	}
}

func TestBackgroundJobs_ExcludesDoneAndForeground(t *testing.T) {
	tbl := NewTable()
	tbl.Add(single(100, false)) // foreground, excluded

	done := single(101, true)
	done.setPidStatus(101, Done)
	tbl.Add(done) // done, excluded

	running := single(102, true)
	tbl.Add(running)

	got := tbl.BackgroundJobs()
	if len(got) != 1 || got[0] != running {
		t.Fatalf("expected only the running background job, got %+v", got)
	}
}

func TestReconcile_NoProgressOnNonPositivePid(t *testing.T) {
	tbl := NewTable()
	if tbl.Reconcile(0, false, false) {
		t.Errorf("expected no progress for pid <= 0")
	}
	if tbl.Reconcile(-1, false, false) {
		t.Errorf("expected no progress for pid <= 0")
	}
}

func TestReconcile_UnknownPidStillReportsProgress(t *testing.T) {
	tbl := NewTable()
	if !tbl.Reconcile(12345, false, false) {
		t.Errorf("expected progress=true for an unknown pid (caller should keep draining)")
	}
}

func TestReconcile_ExitMarksDone(t *testing.T) {
	tbl := NewTable()
	j := single(100, true)
	tbl.Add(j)

	if !tbl.Reconcile(100, false, false) {
		t.Fatalf("expected progress")
	}
	if j.Status() != Done {
		t.Errorf("expected Done after non-stopped reconcile, got %s", j.Status())
	}
}

func TestReconcile_ForegroundStopRelabelsToBackground(t *testing.T) {
	tbl := NewTable()
	fg := single(100, false)
	tbl.Add(fg)

	if !tbl.Reconcile(100, true, true) {
		t.Fatalf("expected progress")
	}

	if !fg.Background {
		t.Errorf("expected job relabeled background after a job-control stop")
	}
	if fg.Number == 0 {
		t.Errorf("expected a fresh positive job number after relabeling")
	}
	if fg.Status() != Stopped {
		t.Errorf("expected Stopped status, got %s", fg.Status())
	}
}

func TestReconcile_NonJobControlStopLeavesForeground(t *testing.T) {
	tbl := NewTable()
	fg := single(100, false)
	tbl.Add(fg)

	tbl.Reconcile(100, true, false)

	if fg.Background {
		t.Errorf("expected job to remain foreground for a non-job-control stop")
	}
	if fg.Status() != Stopped {
		t.Errorf("expected Stopped status, got %s", fg.Status())
	}
}
