package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.pas")
	require.NoError(t, os.WriteFile(path, []byte("begin end."), 0644))

	*flagInteract = false
	src, err := readSource([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "begin end.", src)
}

func TestReadSource_MissingFile(t *testing.T) {
	*flagInteract = false
	_, err := readSource([]string{"/nonexistent/path.pas"})
	assert.Error(t, err)
}

func TestWriteTarget_ToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.cs")

	*flagOutput = path
	defer func() { *flagOutput = "" }()

	require.NoError(t, writeTarget("class Program {}"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class Program {}", string(got))
}

func TestWriteTarget_ToStdoutWhenNoOutputFlag(t *testing.T) {
	*flagOutput = ""
	assert.NoError(t, writeTarget("class Program {}"))
}
