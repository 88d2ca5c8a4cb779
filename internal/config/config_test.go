package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

func isolatedEnv(t *testing.T, extra ...string) []string {
	t.Helper()
	return append([]string{"XDG_CONFIG_HOME=" + t.TempDir()}, extra...)
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, isolatedEnv(t))
	require.NoError(t, err)
	assert.Equal(t, sysctl.DefaultRoot, cfg.App.Root)
	assert.Equal(t, 250*time.Millisecond, cfg.App.TickRate)
	assert.Equal(t, 2*time.Second, cfg.App.MessageTimeout)
	assert.Equal(t, sysctl.DefaultDocsGlob, cfg.App.DocsGlob)
	assert.True(t, cfg.App.Clipboard)
	assert.False(t, cfg.App.ShowFooter)
	assert.Empty(t, cfg.File)
	require.NoError(t, Validate(cfg))
}

func TestLoadArgsLayering(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("tick-rate: 100\nroot: /from/file\nsection: vm\nfooter: true\n"), 0o644))

	cfg, err := LoadArgs(
		[]string{"--config", file, "--section", "net"},
		isolatedEnv(t, "SYSCTL_CONTROL_ROOT=/from/env", "SYSCTL_CONTROL_NO_CLIPBOARD=1"),
	)
	require.NoError(t, err)
	assert.Equal(t, file, cfg.File)
	assert.Equal(t, 100*time.Millisecond, cfg.App.TickRate)
	assert.Equal(t, "/from/env", cfg.App.Root)
	assert.Equal(t, "net", cfg.App.Section)
	assert.True(t, cfg.App.ShowFooter)
	assert.False(t, cfg.App.Clipboard)
	assert.Equal(t, "net", cfg.Flags["section"])
}

func TestLoadArgsDefaultFileLocation(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "sysctl-control"), 0o755))
	path := filepath.Join(xdg, "sysctl-control", "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query: swap\n"), 0o644))

	cfg, err := LoadArgs(nil, []string{"XDG_CONFIG_HOME=" + xdg})
	require.NoError(t, err)
	assert.Equal(t, "swap", cfg.App.Query)
	assert.Equal(t, path, cfg.File)
}

func TestLoadArgsMissingExplicitFile(t *testing.T) {
	_, err := LoadArgs([]string{"-config=" + filepath.Join(t.TempDir(), "nope.yaml")}, isolatedEnv(t))
	require.Error(t, err)
}

func TestLoadArgsBadYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("tick-rate: [\n"), 0o644))
	_, err := LoadArgs(nil, isolatedEnv(t, "SYSCTL_CONTROL_CONFIG="+file))
	require.Error(t, err)
}

func TestLoadArgsUnknownFlag(t *testing.T) {
	_, err := LoadArgs([]string{"--bogus"}, isolatedEnv(t))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs([]string{"--tick-rate", "0"}, isolatedEnv(t))
	require.NoError(t, err)
	assert.Error(t, Validate(cfg))

	cfg, err = LoadArgs([]string{"--docs-pattern", "("}, isolatedEnv(t))
	require.NoError(t, err)
	assert.Error(t, Validate(cfg))

	cfg, err = LoadArgs([]string{"--docs-pattern", "(", "--no-docs"}, isolatedEnv(t))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))

	cfg, err = LoadArgs([]string{"--width", "-1"}, isolatedEnv(t))
	require.NoError(t, err)
	assert.Error(t, Validate(cfg))
}
