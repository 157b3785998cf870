package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aamultisig/go-aamultisig/config"
	"github.com/aamultisig/go-aamultisig/signing"
)

const (
	ownerKeyPattern = "owner-%d.key"
	nextOwnerKey    = "next-owner.key"
)

func loadDeployer(path string) (*signing.KeySigner, error) {
	if path == "" {
		return nil, errors.New("deployer key file is not set")
	}
	return signing.NewKeySigner(signing.FromFile(path))
}

// loadOrCreate loads the key from path or generates a new one and saves it there.
func loadOrCreate(logger *zap.Logger, path string) (*signing.KeySigner, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return signing.NewKeySigner(signing.FromFile(path))
	case errors.Is(err, fs.ErrNotExist):
		signer, err := signing.NewKeySigner(signing.ToFile(path))
		if err != nil {
			return nil, err
		}
		logger.Info("generated key",
			zap.String("path", path),
			zap.Stringer("address", signer.Address()),
		)
		return signer, nil
	default:
		return nil, fmt.Errorf("stat key file %s: %w", path, err)
	}
}

func ownerKeyFiles(cfg *config.Config) []string {
	if len(cfg.OwnerKeyFiles) > 0 {
		return cfg.OwnerKeyFiles
	}
	files := make([]string, cfg.Owners)
	for i := range files {
		files[i] = filepath.Join(cfg.DataDir, fmt.Sprintf(ownerKeyPattern, i+1))
	}
	return files
}

func loadOwners(logger *zap.Logger, cfg *config.Config) ([]*signing.KeySigner, error) {
	files := ownerKeyFiles(cfg)
	owners := make([]*signing.KeySigner, 0, len(files))
	for _, path := range files {
		signer, err := loadOrCreate(logger, path)
		if err != nil {
			return nil, err
		}
		owners = append(owners, signer)
	}
	return owners, nil
}
