package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/invpt/radi/lang/parser"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
entry: main.radi
parser:
  max_depth: 64
watch:
  extensions: [".radi", ".rd"]
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "main.radi", cfg.Entry)
	require.Equal(t, 64, cfg.Parser.MaxDepth)
	require.Equal(t, []string{".radi", ".rd"}, cfg.Watch.Extensions)
	require.Equal(t, dir, cfg.RootDir)
}

func TestLoadFileDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "entry: main.radi\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	require.Equal(t, []string{".radi"}, cfg.Watch.Extensions)
}

func TestLoadFileRejectsBadDepth(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "parser:\n  max_depth: -1\n")

	_, err := LoadFile(path)
	require.ErrorContains(t, err, "max_depth")
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "entry: [unclosed\n")

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFromFindsUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "entry: app.radi\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := LoadFrom(nested)
	require.NoError(t, err)
	require.Equal(t, "app.radi", cfg.Entry)
	require.Equal(t, root, cfg.RootDir)
}

func TestLoadFromWithoutConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	require.Equal(t, "", cfg.Entry)
	require.Equal(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	require.Equal(t, dir, cfg.RootDir)
}
