package main

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	appName = "testprep"
	version = "0.1.0"

	appLockFileName = "testprep.lock"
	appLogFileName  = "testprep.log"
	envFileName     = "testprep.env"
	layoutFileName  = "testprep.star"
	runDBFileName   = "testprep.db"

	resultsDirName     = "test-results"
	screenshotsDirName = "screenshots"
	reportsDirName     = "reports"

	dirPerms  = 0o755
	filePerms = 0o644

	debounceInterval = 500 * time.Millisecond
	defaultLogLines  = 20
	defaultRunsShown = 5
	timestampFormat  = "2006-01-02 15:04:05"

	baseDirVar   = "base_dir"
	envVar       = "env"
	extraDirsVar = "extra_dirs"
	notifyVar    = "notify"
)

var defaultStateRoot = filepath.Join(xdg.StateHome, appName)
