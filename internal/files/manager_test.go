package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "report.pdf")
	m := NewManager(quietLogger())

	n, err := m.WriteAtomic(target, func(w io.Writer) error {
		_, err := io.WriteString(w, "%PDF-1.3")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.True(t, m.FileExists(target))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(content))
}

func TestWriteAtomic_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.pdf")
	m := NewManager(quietLogger())

	_, err := m.WriteAtomic(target, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("render failed")
	})
	require.EqualError(t, err, "render failed")
	assert.False(t, m.FileExists(target))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file must be cleaned up")
}

func TestEnsureDirectory(t *testing.T) {
	m := NewManager(nil)
	path := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, m.EnsureDirectory(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, m.EnsureDirectory("."))
	assert.False(t, m.FileExists(path), "directories are not files")
}
