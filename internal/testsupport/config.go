package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"nbhooks/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config rooted at a fresh temp directory with git
// detection disabled, so tests never depend on the surrounding checkout.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	cfgVal := config.Default()
	cfgVal.Repo.Root = root
	cfgVal.Repo.UseGit = false

	builder := &configBuilder{t: t, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithRepoName sets the repository name used in badges and the header.
func WithRepoName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Repo.Name = name
	}
}

// WithRepoDir roots the config at a named subdirectory of the temp dir, so
// the root's base name can stand in for the repository name.
func WithRepoDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		dir := filepath.Join(b.cfg.Repo.Root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir %s: %v", dir, err)
		}
		b.cfg.Repo.Root = dir
	}
}
