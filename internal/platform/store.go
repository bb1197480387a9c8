// =============================================================================
// Invoice Reconciliation - Platform Collaborators: Artifact Store
// =============================================================================
//
// The pipeline persists its artifact through a key-value store capability
// rather than writing files directly. That keeps the hosting platform
// swappable: the default implementation below is the local filesystem, but
// anything that can store named bytes satisfies the interface.
//
// =============================================================================

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// KeyValueStore persists one named artifact per call.
type KeyValueStore interface {
	// Set stores data under name. contentType is advisory; stores that
	// have nowhere to put it may ignore it.
	Set(name string, data []byte, contentType string) error
}

// FSStore is a KeyValueStore backed by a directory. An existing artifact of
// the same name is moved to the archive directory before being replaced, so
// a re-run never silently destroys the previous output.
type FSStore struct {
	dir        string
	archiveDir string
}

// NewFSStore creates a filesystem store writing into dir, archiving into
// archiveDir. An empty archiveDir disables archiving.
func NewFSStore(dir, archiveDir string) *FSStore {
	return &FSStore{dir: dir, archiveDir: archiveDir}
}

// Set writes data to <dir>/<name>, archiving any previous artifact first.
func (s *FSStore) Set(name string, data []byte, contentType string) error {
	target := filepath.Join(s.dir, name)

	if s.archiveDir != "" {
		if _, err := os.Stat(target); err == nil {
			if err := s.archive(target, name); err != nil {
				return fmt.Errorf("failed to archive previous artifact: %w", err)
			}
		}
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// archive moves an existing artifact into the archive directory, suffixing
// the name if an archived copy already exists.
func (s *FSStore) archive(path, name string) error {
	if err := os.MkdirAll(s.archiveDir, 0755); err != nil {
		return err
	}

	dest := filepath.Join(s.archiveDir, name)
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(s.archiveDir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}

	return os.Rename(path, dest)
}
