package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// defaultTargets returns the output directories every workspace gets,
// relative to the base directory.
func defaultTargets() []string {
	return []string{
		filepath.Join(resultsDirName, screenshotsDirName),
		filepath.Join(resultsDirName, reportsDirName),
	}
}

// ensureDirs guarantees every target directory exists under baseDir,
// creating missing ones along with their parents. It writes one message to
// out per directory it creates and stays silent about directories that
// already exist. Filesystem errors are returned as-is.
// It returns the absolute paths of the directories it created, in order.
func ensureDirs(baseDir string, targets []string, out io.Writer) ([]string, error) {
	created := []string{}

	for _, target := range targets {
		abs, err := filepath.Abs(filepath.Join(baseDir, target))
		if err != nil {
			return created, err
		}

		_, err = os.Stat(abs)
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			return created, err
		}

		if err := os.MkdirAll(abs, dirPerms); err != nil {
			return created, err
		}

		fmt.Fprintf(out, "📁 Created directory: %s\n", abs)
		created = append(created, abs)
	}

	return created, nil
}
