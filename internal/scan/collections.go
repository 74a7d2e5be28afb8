package scan

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/folio/internal/frontmatter"
	"git.home.luguber.info/inful/folio/internal/logfields"
)

// Collection is an immediate subdirectory of the root and the images found
// beneath it.
type Collection struct {
	Name        string       // Directory name, used verbatim as an identifier
	Images      []ImageEntry // Recursive, lexicographic order
	Title       string       // Heading override from the description file
	Description []byte       // Markdown body of the description file
}

// DisplayName returns the heading shown for the collection.
func (c Collection) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	return Heading(c.Name)
}

// Collections is an ordered association list keyed by collection name.
// Order is the lexicographic order of the subdirectories.
type Collections []Collection

// Names returns collection names in order.
func (cs Collections) Names() []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

// Get returns the collection with the given name.
func (cs Collections) Get(name string) (Collection, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// TotalImages counts images across all collections.
func (cs Collections) TotalImages() int {
	n := 0
	for _, c := range cs {
		n += len(c.Images)
	}
	return n
}

type descriptionMeta struct {
	Title string `yaml:"title"`
}

// Collections groups images by the immediate subdirectories of root.
// Each subdirectory is scanned recursively with locators relative to the
// directory containing document. Subdirectories without images are omitted.
// Images directly inside root belong to no collection.
func (s *Scanner) Collections(root, document string) (Collections, error) {
	result := make(Collections, 0)
	if !s.rootExists(root) {
		return result, nil
	}

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, root, err)
	}

	documentDir := filepath.Dir(document)
	for _, entry := range entries {
		name := entry.Name()
		dir := filepath.Join(root, name)
		if !isDir(dir, entry) {
			continue
		}
		if s.ignoreHidden && strings.HasPrefix(name, ".") {
			continue
		}

		images, err := s.walk(dir, documentDir)
		if err != nil {
			return nil, err
		}
		if len(images) == 0 {
			slog.Debug("Skipping collection without images", logfields.Collection(name))
			continue
		}

		c := Collection{Name: name, Images: images}
		s.loadDescription(dir, &c)
		result = append(result, c)
		slog.Debug("Discovered collection", logfields.Collection(name), logfields.Count(len(images)))
	}
	return result, nil
}

// loadDescription applies the optional description file in dir to c.
// Unreadable or malformed files are logged and ignored.
func (s *Scanner) loadDescription(dir string, c *Collection) {
	if s.descriptionFile == "" {
		return
	}
	path := filepath.Join(dir, s.descriptionFile)
	content, err := os.ReadFile(path) // #nosec G304 -- path is inside the scanned root
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read collection description", logfields.Path(path), logfields.Error(err))
		}
		return
	}

	var meta descriptionMeta
	body, _, err := frontmatter.Decode(content, &meta)
	if err != nil {
		slog.Warn("Ignoring malformed collection description", logfields.Path(path), logfields.Error(err))
		return
	}
	c.Title = strings.TrimSpace(meta.Title)
	if body = bytes.TrimSpace(body); len(body) > 0 {
		c.Description = body
	}
}

func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
