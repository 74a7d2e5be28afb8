package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/folio/internal/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRoot, cfg.Root)
	assert.Equal(t, DefaultGalleryDocument, cfg.Gallery.Document)
	assert.Equal(t, DefaultGalleryStart, cfg.Gallery.StartMarker)
	assert.Equal(t, DefaultGalleryEnd, cfg.Gallery.EndMarker)
	assert.Equal(t, DefaultCollectionsDoc, cfg.Collections.Document)
	assert.Equal(t, DefaultCollectionsStart, cfg.Collections.StartMarker)
	assert.Equal(t, DefaultCollectionsEnd, cfg.Collections.EndMarker)
	assert.Equal(t, DefaultExtensions, cfg.Extensions)
	assert.Equal(t, DefaultIndent, cfg.Indent)
	assert.Equal(t, DefaultWatchDebounce, cfg.Watch.Debounce)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.BaseDir)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	raw := `root: images
gallery:
  document: site/all.html
extensions: [PNG, "jpg", .Webp]
watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "images", cfg.Root)
	assert.Equal(t, "site/all.html", cfg.Gallery.Document)
	// Markers not named in the file keep their defaults.
	assert.Equal(t, DefaultGalleryStart, cfg.Gallery.StartMarker)
	assert.Equal(t, DefaultCollectionsDoc, cfg.Collections.Document)
	assert.Equal(t, []string{".png", ".jpg", ".webp"}, cfg.Extensions)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, filepath.Join(dir, "images"), cfg.RootPath())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: ${FOLIO_TEST_ROOT}\n"), 0o600))
	t.Setenv("FOLIO_TEST_ROOT", "expanded")
	t.Setenv(EnvGallery, "out/g.html")
	t.Setenv(EnvCollections, "out/c.html")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "expanded", cfg.Root)
	assert.Equal(t, "out/g.html", cfg.Gallery.Document)
	assert.Equal(t, "out/c.html", cfg.Collections.Document)

	t.Setenv(EnvRoot, "from-env")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Root)
}

func TestLoad_DotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gallery:\n  document: ${FOLIO_TEST_PAGE}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FOLIO_TEST_PAGE=from-dotenv.html\n"), 0o600))
	t.Setenv("FOLIO_TEST_PAGE", "from-process.html")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-process.html", cfg.Gallery.Document)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: [unterminated\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, ferrors.IsCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Root = " " }},
		{"empty gallery document", func(c *Config) { c.Gallery.Document = "" }},
		{"empty start marker", func(c *Config) { c.Collections.StartMarker = "" }},
		{"empty end marker", func(c *Config) { c.Gallery.EndMarker = "" }},
		{"identical markers", func(c *Config) { c.Gallery.EndMarker = c.Gallery.StartMarker }},
		{"same document twice", func(c *Config) { c.Collections.Document = c.Gallery.Document }},
		{"no extensions", func(c *Config) { c.Extensions = []string{" "} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.BaseDir = t.TempDir()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, ferrors.IsCategory(err, ferrors.CategoryValidation))
		})
	}
}

func TestValidate_NormalisesExtensions(t *testing.T) {
	cfg := Default()
	cfg.Extensions = []string{"PNG", ".png", " svg "}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{".png", ".svg"}, cfg.Extensions)
}

func TestResolve(t *testing.T) {
	cfg := &Config{BaseDir: "/site"}
	assert.Equal(t, filepath.Join("/site", "pages", "gallery.html"), cfg.Resolve("pages/gallery.html"))
	assert.Equal(t, filepath.Clean("/abs/art"), cfg.Resolve("/abs/art/"))
}

func TestInit_WritesLoadableDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "existing file must not be overwritten")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	want := Default()
	assert.Equal(t, want.Root, cfg.Root)
	assert.Equal(t, want.Gallery, cfg.Gallery)
	assert.Equal(t, want.Collections, cfg.Collections)
	assert.Equal(t, want.Watch, cfg.Watch)
}
