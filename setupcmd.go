package main

import (
	"fmt"
	"log"
	"os"
	"time"
)

type SetupCmd struct{}

func (s *SetupCmd) Run(config Config) error {
	unlock, err := lockState(config.StateRoot)
	if err != nil {
		return err
	}
	defer unlock()

	layout, err := loadLayout(config.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	started := time.Now()
	created, ensureErr := ensureDirs(config.BaseDir, layout.Targets(), os.Stdout)

	run := CompletedRun{
		Command:  "setup",
		BaseDir:  config.BaseDir,
		Affected: len(created),
		Started:  started,
		Finished: time.Now(),
	}
	if ensureErr != nil {
		run.Error = ensureErr.Error()
	}

	// Run recording is best-effort. The directories are the contract;
	// a broken state root must not fail an otherwise good setup.
	db, err := openRunDB(config.StateRoot)
	if err != nil {
		log.Printf("Failed to open run database: %v", err)
	} else {
		defer db.close()

		if err := db.saveRun(run, created); err != nil {
			log.Printf("Failed to record run: %v", err)
		}
	}

	return ensureErr
}
