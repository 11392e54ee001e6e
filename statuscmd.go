package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type StatusCmd struct {
	Runs int `help:"Number of recent runs to show" short:"r" default:"${defaultRunsShown}"`
}

func (s *StatusCmd) Run(config Config) error {
	width := getTermWidth()
	separator := strings.Repeat("-", width)

	layout, err := loadLayout(config.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	color.Set(color.Bold)
	fmt.Println("Targets")
	color.Unset()

	for _, target := range layout.Targets() {
		path := filepath.Join(config.BaseDir, target)

		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			fmt.Printf("    %v: missing\n", target)

		case err != nil:
			return fmt.Errorf("error checking target %q: %w", target, err)

		case !info.IsDir():
			fmt.Printf("    %v: exists but is not a directory\n", target)

		default:
			entries, err := os.ReadDir(path)
			if err != nil {
				return fmt.Errorf("error reading target %q: %w", target, err)
			}

			fmt.Printf("    %v: %v entries\n", target, len(entries))
		}
	}

	fmt.Println(separator)

	db, err := openRunDB(config.StateRoot)
	if err != nil {
		return err
	}
	defer db.close()

	runs, err := db.recentRuns(config.BaseDir, s.Runs)
	if err != nil {
		return fmt.Errorf("error loading recent runs: %w", err)
	}

	color.Set(color.Bold)
	fmt.Println("Recent runs")
	color.Unset()

	if len(runs) == 0 {
		fmt.Println("    none")
		return nil
	}

	for _, run := range runs {
		outcome := "ok"
		if !run.IsSuccess() {
			outcome = "error: " + run.Error
		}

		fmt.Printf(
			"    %v  %-5v  %v paths  %v\n",
			run.Started.Format(timestampFormat),
			run.Command,
			run.Affected,
			outcome,
		)
	}

	return nil
}

func getTermWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w
	}

	return 80
}
