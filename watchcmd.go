package main

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/syncthing/notify"
)

type WatchCmd struct{}

func (w *WatchCmd) Run(config Config) error {
	unlock, err := lockState(config.StateRoot)
	if err != nil {
		return err
	}
	defer unlock()

	layout, err := loadLayout(config.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	db, err := openRunDB(config.StateRoot)
	if err != nil {
		return err
	}
	defer db.close()

	log.Printf("Watching %v", config.BaseDir)

	// Complete the workspace before watching so a fresh base directory
	// doesn't need a separate setup invocation.
	repairWorkspace(config, layout, db, notifyUserByEmail)

	eventChan := make(chan notify.EventInfo, 1)

	// "..." indicates recursive watching.
	watchPath := filepath.Join(config.BaseDir, "...")
	if err := notify.Watch(watchPath, eventChan, notify.Remove, notify.Rename); err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer notify.Stop(eventChan)

	return watchTargets(config, layout, db, notifyUserByEmail, eventChan)
}

func watchTargets(config Config, layout Layout, db *runDB, notifyFn notifyWhenRepaired, eventChan <-chan notify.EventInfo) error {
	debounced := debounce.New(debounceInterval)

	for eventInfo := range eventChan {
		eventPath := eventInfo.Path()

		if !coversTarget(config.BaseDir, layout.Targets(), eventPath) {
			continue
		}

		// Debounce so a recursive delete triggers one repair.
		debounced(func() {
			repairWorkspace(config, layout, db, notifyFn)
		})
	}

	return nil
}

// coversTarget reports whether path is a target directory under baseDir or
// an ancestor of one. Paths below a target don't count: tests deleting their
// own output files is normal.
func coversTarget(baseDir string, targets []string, path string) bool {
	for _, target := range targets {
		full := filepath.Join(baseDir, target)

		rel, err := filepath.Rel(path, full)
		if err != nil {
			continue
		}

		if !strings.HasPrefix(rel, "..") {
			return true
		}
	}

	return false
}

// repairWorkspace re-creates missing target directories and records the
// repair when anything had to be done.
func repairWorkspace(config Config, layout Layout, db *runDB, notifyFn notifyWhenRepaired) {
	started := time.Now()

	repaired, err := ensureDirs(config.BaseDir, layout.Targets(), io.Discard)
	if err != nil {
		log.Printf("Failed to repair workspace: %v", err)
	}

	for _, path := range repaired {
		log.Printf("Re-created directory: %v", path)
	}

	if len(repaired) == 0 && err == nil {
		return
	}

	run := CompletedRun{
		Command:  "watch",
		BaseDir:  config.BaseDir,
		Affected: len(repaired),
		Started:  started,
		Finished: time.Now(),
	}
	if err != nil {
		run.Error = err.Error()
	}

	if db != nil {
		if saveErr := db.saveRun(run, repaired); saveErr != nil {
			log.Printf("Failed to record run: %v", saveErr)
		}
	}

	if notifyErr := notifyIfNeeded(notifyFn, layout.Notify, config.BaseDir, repaired); notifyErr != nil {
		log.Printf("Failed to send notification: %v", notifyErr)
	}
}
