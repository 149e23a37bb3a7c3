// Package storage stores checkout artifacts (reports and receipts).
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// ArtifactStore saves a named file and returns where it ended up
type ArtifactStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// LocalArtifactStore writes artifacts into a directory on disk
type LocalArtifactStore struct {
	dir string
}

// NewLocalArtifactStore creates the directory if needed
func NewLocalArtifactStore(dir string) (*LocalArtifactStore, error) {
	if dir == "" {
		return nil, errors.New("artifact directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
	}
	return &LocalArtifactStore{dir: dir}, nil
}

// Put writes data to dir/name and returns the file path
func (s *LocalArtifactStore) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	log.WithFields(logrus.Fields{"artifact": name, "path": path, "bytes": len(data)}).Debug("Artifact written")
	return path, nil
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	return nil
}
