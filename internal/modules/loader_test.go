package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
}

func TestLoadResolvesAgainstBaseDir(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.mel", "let answer = 42")

	loader := NewLoader(dir, nil)
	program, err := loader.Load("util")
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)
}

func TestLoadAcceptsExplicitExtension(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.mel", "let answer = 42")

	loader := NewLoader(dir, nil)
	_, err := loader.Load("util.mel")
	require.NoError(t, err)
}

func TestLoadFallsBackToSearchPaths(t *testing.T) {
	base := t.TempDir()
	lib := t.TempDir()
	writeModule(t, lib, "shared.mel", "let x = 1")

	loader := NewLoader(base, []string{lib})
	_, err := loader.Load("shared")
	require.NoError(t, err)
}

func TestLoadMissingModule(t *testing.T) {
	loader := NewLoader(t.TempDir(), nil)
	_, err := loader.Load("nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "bad.mel", "let = 5")

	loader := NewLoader(dir, nil)
	_, err := loader.Load("bad")
	assert.Error(t, err)
}

func TestLoadRereadsEveryTime(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "m.mel", "let v = 1")

	loader := NewLoader(dir, nil)
	first, err := loader.Load("m")
	require.NoError(t, err)

	writeModule(t, dir, "m.mel", "let v = 1\nlet w = 2")
	second, err := loader.Load("m")
	require.NoError(t, err)

	assert.Len(t, first.Statements, 1)
	assert.Len(t, second.Statements, 2)
}
