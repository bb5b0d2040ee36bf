package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cutboard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ThumbCacheDB = filepath.Join(base, "cache", "thumbs.db")
	cfgVal.Thumbnails.Auto = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThumbSize overrides the thumbnail dimensions on the test config.
func WithThumbSize(width, height int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Thumbnails.Width = width
		b.cfg.Thumbnails.Height = height
	}
}

// WithMaster overrides the default master properties on the test config.
func WithMaster(master config.Master) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Master = master
	}
}

// WriteConfig marshals the config to a TOML file under its base directory
// and returns the path, for tests that exercise file-based config loading.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
