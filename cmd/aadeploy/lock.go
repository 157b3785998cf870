package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFile = "aadeploy.lock"

// lockDataDir prevents two deployers from sending transactions with the same keys,
// which would race for the same nonce.
func lockDataDir(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	fl := flock.New(filepath.Join(dir, lockFile))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("flock %s: %w", fl.Path(), err)
	} else if !locked {
		return nil, fmt.Errorf("only one deployer should be running (locking file %s)", fl.Path())
	}
	return fl, nil
}
