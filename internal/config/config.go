// Package config holds the folio configuration: which image tree to scan,
// which documents to update and the marker pairs delimiting their generated regions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/folio/internal/errors"
)

// Default values used when no configuration file or override supplies one.
const (
	DefaultConfigFile       = "folio.yaml"
	DefaultRoot             = "art"
	DefaultGalleryDocument  = "pages/gallery.html"
	DefaultCollectionsDoc   = "pages/collections.html"
	DefaultGalleryStart     = "<!-- GALLERY_IMAGES_START -->"
	DefaultGalleryEnd       = "<!-- GALLERY_IMAGES_END -->"
	DefaultCollectionsStart = "<!-- COLLECTIONS_START -->"
	DefaultCollectionsEnd   = "<!-- COLLECTIONS_END -->"
	DefaultIndent           = "        "
	DefaultDescriptionFile  = "_collection.md"
	DefaultWatchDebounce    = 300 * time.Millisecond
)

// DefaultExtensions is the allow-set of image file extensions.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Config represents the application configuration
type Config struct {
	Root            string      `yaml:"root"`
	Gallery         Target      `yaml:"gallery"`
	Collections     Target      `yaml:"collections"`
	Extensions      []string    `yaml:"extensions,omitempty"`
	Indent          string      `yaml:"indent,omitempty"`
	DescriptionFile string      `yaml:"description_file,omitempty"`
	IgnoreHidden    bool        `yaml:"ignore_hidden,omitempty"`
	ClearWhenEmpty  bool        `yaml:"clear_when_empty,omitempty"`
	Watch           WatchConfig `yaml:"watch,omitempty"`

	// BaseDir anchors relative paths. It is the config file's directory, or the
	// working directory when no file was loaded.
	BaseDir string `yaml:"-"`
}

// Target is a document with a replaceable marker region.
type Target struct {
	Document    string `yaml:"document"`
	StartMarker string `yaml:"start_marker"`
	EndMarker   string `yaml:"end_marker"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// Default returns a configuration populated with the documented defaults.
func Default() *Config {
	return &Config{
		Root: DefaultRoot,
		Gallery: Target{
			Document:    DefaultGalleryDocument,
			StartMarker: DefaultGalleryStart,
			EndMarker:   DefaultGalleryEnd,
		},
		Collections: Target{
			Document:    DefaultCollectionsDoc,
			StartMarker: DefaultCollectionsStart,
			EndMarker:   DefaultCollectionsEnd,
		},
		Extensions:      append([]string(nil), DefaultExtensions...),
		Indent:          DefaultIndent,
		DescriptionFile: DefaultDescriptionFile,
		Watch:           WatchConfig{Debounce: DefaultWatchDebounce},
	}
}

// Load loads configuration from the specified file.
// A missing file is not an error: defaults apply, anchored at the working directory.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	baseDir, err := os.Getwd()
	if err != nil {
		return nil, ferrors.InternalError("resolve working directory", err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path supplied by the operator
	switch {
	case err == nil:
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, ferrors.ConfigInvalid(configPath, absErr)
		}
		baseDir = filepath.Dir(abs)
		loadEnvFile(baseDir)

		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, ferrors.ConfigInvalid(configPath, fmt.Errorf("failed to unmarshal config: %w", err))
		}
	case os.IsNotExist(err):
		loadEnvFile(baseDir)
	default:
		return nil, ferrors.ConfigInvalid(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	cfg.BaseDir = baseDir
	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills fields a partial YAML document may have blanked.
func applyDefaults(cfg *Config) {
	if cfg.Indent == "" {
		cfg.Indent = DefaultIndent
	}
	if cfg.DescriptionFile == "" {
		cfg.DescriptionFile = DefaultDescriptionFile
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
}

// Resolve anchors a relative path at BaseDir. Absolute paths are returned cleaned.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.BaseDir, p)
}

// RootPath returns the resolved image root.
func (c *Config) RootPath() string { return c.Resolve(c.Root) }
