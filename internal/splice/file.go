package splice

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/folio/internal/logfields"
)

// UpdateFile replaces the marker region of the document at path with inner.
//
// The document is read in full before anything is written. On a missing
// document or missing markers the file is left untouched. The new content is
// written to a temporary file in the same directory and renamed over the
// original, so a failed write never leaves a partial document.
func UpdateFile(path, inner string, m Markers, indent string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return fmt.Errorf("stat document: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	updated, err := Content(string(data), inner, m, indent)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := writeAtomic(path, []byte(updated), info.Mode().Perm()); err != nil {
		return err
	}
	slog.Debug("Document rewritten", logfields.Document(path), slog.Int("bytes", len(updated)))
	return nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp document: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("atomic rename document: %w", err)
	}
	return nil
}
