package main

import (
	"testing"
	"time"
)

func TestOpenRunDBCreatesStateRoot(t *testing.T) {
	stateRoot := t.TempDir() + "/nested/state"

	db, err := openRunDB(stateRoot)
	if err != nil {
		t.Fatalf("openRunDB() error = %v", err)
	}
	defer db.close()
}

func TestSaveAndLastRun(t *testing.T) {
	db, err := openRunDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.close()

	run := CompletedRun{
		Command:  "setup",
		BaseDir:  "/work/project",
		Affected: 2,
		Started:  time.Now().Add(-time.Second),
		Finished: time.Now(),
	}

	paths := []string{
		"/work/project/test-results/screenshots",
		"/work/project/test-results/reports",
	}
	if err := db.saveRun(run, paths); err != nil {
		t.Fatalf("saveRun() error = %v", err)
	}

	got, err := db.lastRun("/work/project")
	if err != nil {
		t.Fatalf("lastRun() error = %v", err)
	}
	if got == nil {
		t.Fatal("lastRun() = nil, want a run")
	}

	if got.Command != run.Command || got.BaseDir != run.BaseDir || got.Affected != run.Affected {
		t.Errorf("lastRun() = %+v, want %+v", got, run)
	}

	if !got.IsSuccess() {
		t.Errorf("expected successful run, got error %q", got.Error)
	}
}

func TestLastRunNoRows(t *testing.T) {
	db, err := openRunDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.close()

	got, err := db.lastRun("/nowhere")
	if err != nil {
		t.Fatalf("lastRun() error = %v", err)
	}
	if got != nil {
		t.Errorf("lastRun() = %+v, want nil", got)
	}
}

func TestRecentRunsFiltersAndLimits(t *testing.T) {
	db, err := openRunDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.close()

	now := time.Now()
	for i := 0; i < 3; i++ {
		run := CompletedRun{
			Command:  "setup",
			BaseDir:  "/work/a",
			Started:  now,
			Finished: now,
		}
		if err := db.saveRun(run, nil); err != nil {
			t.Fatal(err)
		}
	}

	other := CompletedRun{
		Command:  "clean",
		BaseDir:  "/work/b",
		Started:  now,
		Finished: now,
	}
	if err := db.saveRun(other, nil); err != nil {
		t.Fatal(err)
	}

	runs, err := db.recentRuns("/work/a", 2)
	if err != nil {
		t.Fatalf("recentRuns() error = %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("recentRuns() returned %v runs, want 2", len(runs))
	}

	for _, run := range runs {
		if run.BaseDir != "/work/a" {
			t.Errorf("recentRuns() returned run for %q", run.BaseDir)
		}
	}
}

func TestSaveRunWithError(t *testing.T) {
	db, err := openRunDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.close()

	run := CompletedRun{
		Command:  "setup",
		BaseDir:  "/work/broken",
		Error:    "permission denied",
		Started:  time.Now(),
		Finished: time.Now(),
	}
	if err := db.saveRun(run, nil); err != nil {
		t.Fatal(err)
	}

	got, err := db.lastRun("/work/broken")
	if err != nil {
		t.Fatal(err)
	}

	if got.IsSuccess() {
		t.Error("expected unsuccessful run")
	}
	if got.Error != "permission denied" {
		t.Errorf("Error = %q, want %q", got.Error, "permission denied")
	}
}
