// Package scan discovers image files under a root directory and groups them
// into collections by top-level subdirectory.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/folio/internal/logfields"
)

// ImageEntry is one discovered image.
type ImageEntry struct {
	Path  string // Locator relative to the target document's directory, forward slashes
	Label string // Caption derived from the filename, used as alt text
}

// Options control which files count as images.
type Options struct {
	Extensions      []string // Lower-case extensions with leading dot
	IgnoreHidden    bool     // Skip dot-files and dot-directories
	DescriptionFile string   // Per-collection metadata file name, empty to disable
}

// Scanner walks image trees. It holds no state between calls.
type Scanner struct {
	exts            map[string]struct{}
	ignoreHidden    bool
	descriptionFile string
}

// New creates a Scanner for the given options.
func New(opts Options) *Scanner {
	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}
	return &Scanner{
		exts:            exts,
		ignoreHidden:    opts.IgnoreHidden,
		descriptionFile: opts.DescriptionFile,
	}
}

// Images returns every image under root, recursively, in lexicographic path
// order. Locators are relative to the directory containing document.
// A missing root is logged and yields no images.
func (s *Scanner) Images(root, document string) ([]ImageEntry, error) {
	if !s.rootExists(root) {
		return []ImageEntry{}, nil
	}
	return s.walk(root, filepath.Dir(document))
}

// IsImage reports whether name carries an allowed extension. A name that is
// only an extension, such as ".png", has no extension at all.
func (s *Scanner) IsImage(name string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if strings.TrimSuffix(base, ext) == "" {
		return false
	}
	_, ok := s.exts[strings.ToLower(ext)]
	return ok
}

func (s *Scanner) rootExists(root string) bool {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Image root does not exist", logfields.Root(root))
		} else {
			slog.Warn("Image root not accessible", logfields.Root(root), logfields.Error(err))
		}
		return false
	}
	if !info.IsDir() {
		slog.Warn("Image root is not a directory", logfields.Root(root))
		return false
	}
	return true
}

// walk recursively collects images under dir. filepath.WalkDir visits
// entries in lexical order, so results are deterministic. When dir itself is
// a symlink its target is walked, but locators keep the linked path.
func (s *Scanner) walk(dir, documentDir string) ([]ImageEntry, error) {
	images := make([]ImageEntry, 0)

	walkRoot, err := resolveLink(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, dir, err)
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if s.ignoreHidden && path != walkRoot && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !s.IsImage(d.Name()) || !isFile(path, d) {
			return nil
		}

		linked, err := rebase(path, walkRoot, dir)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidRelativePath, path, err)
		}
		locator, err := Locator(linked, documentDir)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidRelativePath, path, err)
		}

		images = append(images, ImageEntry{Path: locator, Label: Label(d.Name())})
		slog.Debug("Discovered image", logfields.Path(locator))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, dir, err)
	}
	return images, nil
}

// resolveLink returns the target of dir when dir is a symlink, else dir.
func resolveLink(dir string) (string, error) {
	info, err := os.Lstat(dir)
	if err != nil {
		return "", err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return dir, nil
	}
	return filepath.EvalSymlinks(dir)
}

// rebase moves path from under walkRoot to the same place under dir.
func rebase(path, walkRoot, dir string) (string, error) {
	if walkRoot == dir {
		return path, nil
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, rel), nil
}

// isFile follows symlinks so linked images are picked up like regular ones.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
