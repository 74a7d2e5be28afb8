package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/folio/internal/errors"
)

// Validate checks the configuration and normalises the extension set
// to lower case with a leading dot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return ferrors.ValidationFailed("root", "must not be empty")
	}
	if err := validateTarget("gallery", c.Gallery); err != nil {
		return err
	}
	if err := validateTarget("collections", c.Collections); err != nil {
		return err
	}
	if c.Resolve(c.Gallery.Document) == c.Resolve(c.Collections.Document) {
		return ferrors.ValidationFailed("collections.document", "must differ from gallery.document")
	}

	exts := make([]string, 0, len(c.Extensions))
	seen := make(map[string]struct{}, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		exts = append(exts, e)
	}
	if len(exts) == 0 {
		return ferrors.ValidationFailed("extensions", "must list at least one extension")
	}
	c.Extensions = exts
	return nil
}

func validateTarget(name string, t Target) error {
	switch {
	case strings.TrimSpace(t.Document) == "":
		return ferrors.ValidationFailed(name+".document", "must not be empty")
	case t.StartMarker == "":
		return ferrors.ValidationFailed(name+".start_marker", "must not be empty")
	case t.EndMarker == "":
		return ferrors.ValidationFailed(name+".end_marker", "must not be empty")
	case t.StartMarker == t.EndMarker:
		return ferrors.ValidationFailed(name+".end_marker", "must differ from start_marker")
	}
	return nil
}
