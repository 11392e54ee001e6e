package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type CleanCmd struct {
	DryRun bool `help:"Show what would be removed without removing it"`
}

func (c *CleanCmd) Run(config Config) error {
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
	removed := 0
	cleaned := []string{}

	for _, target := range layout.Targets() {
		path := filepath.Join(config.BaseDir, target)

		n, err := cleanDir(path, c.DryRun)
		if err != nil {
			return newTargetError(target, err)
		}

		if n == 0 {
			continue
		}

		if c.DryRun {
			fmt.Printf("Would remove %v entries from %v\n", n, path)
		} else {
			fmt.Printf("Removed %v entries from %v\n", n, path)
			cleaned = append(cleaned, path)
		}

		removed += n
	}

	if c.DryRun {
		return nil
	}

	run := CompletedRun{
		Command:  "clean",
		BaseDir:  config.BaseDir,
		Affected: removed,
		Started:  started,
		Finished: time.Now(),
	}

	db, err := openRunDB(config.StateRoot)
	if err != nil {
		log.Printf("Failed to open run database: %v", err)
		return nil
	}
	defer db.close()

	if err := db.saveRun(run, cleaned); err != nil {
		log.Printf("Failed to record run: %v", err)
	}

	return nil
}

// cleanDir removes every entry inside dir, keeping dir itself.
// A missing directory counts as already clean.
func cleanDir(dir string, dryRun bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}

		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if !dryRun {
			if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
				return removed, err
			}
		}

		removed++
	}

	return removed, nil
}
