package browser

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAdapterSaveBinary(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLocalAdapter(dir, nil)

	path, err := adapter.SaveBinary([]byte("%PDF-1.4 body"), "summary_5.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary_5.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 body"), data)
}

func TestLocalAdapterSaveBinaryCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	adapter := NewLocalAdapter(dir, nil)

	path, err := adapter.SaveBinary([]byte("x"), "summary_1.pdf")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestLocalAdapterRedirect(t *testing.T) {
	var out bytes.Buffer
	adapter := NewLocalAdapter(t.TempDir(), &out)

	adapter.Redirect("/login")
	assert.Contains(t, out.String(), "/login")
}
