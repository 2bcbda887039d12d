package advisory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/jonathan/advisor-agent/internal/types"
)

// UploadTranscript uploads a single transcript file as multipart form data
// and returns the server-assigned transcript id. The stored transcript is
// not removable through this API; callers own that inconsistency if a later
// step fails.
func (c *Client) UploadTranscript(ctx context.Context, filename string, content io.Reader) (int64, error) {
	const op = "upload transcript"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build form: %w", op, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return 0, fmt.Errorf("%s: failed to read file: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("%s: failed to finish form: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transcripts/upload", &buf)
	if err != nil {
		return 0, &RequestError{Op: op, Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(op, req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// ListTranscripts returns the caller's uploaded transcripts, newest first.
func (c *Client) ListTranscripts(ctx context.Context) ([]types.Transcript, error) {
	const op = "list transcripts"

	var out []types.Transcript
	if err := c.getJSON(ctx, op, "/transcripts", &out); err != nil {
		return nil, err
	}
	return out, nil
}
