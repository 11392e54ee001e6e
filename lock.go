package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockState takes the application lock in the state root so concurrent
// invocations don't interleave. The returned function releases the lock.
func lockState(stateRoot string) (func(), error) {
	if err := os.MkdirAll(stateRoot, dirPerms); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	fileLock := flock.New(filepath.Join(stateRoot, appLockFileName))

	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("error checking lock file: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another instance is already running")
	}

	return func() {
		_ = fileLock.Unlock()
	}, nil
}
