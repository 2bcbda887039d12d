package browser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalAdapter implements Adapter against the local filesystem and a text
// output stream.
type LocalAdapter struct {
	// Dir is where SaveBinary writes artifacts.
	Dir string
	// Out receives the redirect notice.
	Out io.Writer
}

// NewLocalAdapter creates an adapter writing artifacts under dir and notices
// to out.
func NewLocalAdapter(dir string, out io.Writer) *LocalAdapter {
	return &LocalAdapter{Dir: dir, Out: out}
}

// Redirect prints a sign-in notice; a CLI has no page to navigate.
func (a *LocalAdapter) Redirect(path string) {
	if a.Out != nil {
		_, _ = fmt.Fprintf(a.Out, "Session expired. Sign in again at %s and update your token.\n", path)
	}
}

// SaveBinary writes data under Dir and returns the full path.
func (a *LocalAdapter) SaveBinary(data []byte, filename string) (string, error) {
	dir := a.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
