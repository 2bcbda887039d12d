package advisory

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/advisor-agent/internal/types"
)

// maxSummaryPDFBytes bounds how large a downloaded summary PDF may be.
const maxSummaryPDFBytes = 32 << 20

// GenerateSummaryText asks the service to produce a free-text summary of the
// caller's latest transcript analysis. The text is not persisted server-side
// until SaveSummary is called.
func (c *Client) GenerateSummaryText(ctx context.Context) (string, error) {
	const op = "generate summary"

	var out struct {
		SummaryText string `json:"summary_text"`
	}
	if err := c.postJSON(ctx, op, "/summaries/generate", nil, &out); err != nil {
		return "", err
	}
	return out.SummaryText, nil
}

// SaveSummary persists a summary PDF server-side and returns its reference.
func (c *Client) SaveSummary(ctx context.Context, req types.SaveSummaryRequest) (types.SummaryRef, error) {
	const op = "save summary"

	if err := req.Validate(); err != nil {
		return types.SummaryRef{}, fmt.Errorf("%s: invalid request: %w", op, err)
	}

	var ref types.SummaryRef
	if err := c.postJSON(ctx, op, "/summaries", req, &ref); err != nil {
		return types.SummaryRef{}, err
	}
	return ref, nil
}

// ListSummaries returns the caller's saved summaries in server order.
func (c *Client) ListSummaries(ctx context.Context) ([]types.Summary, error) {
	const op = "list summaries"

	var out []types.Summary
	if err := c.getJSON(ctx, op, "/summaries", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadSummary fetches the binary PDF for a saved summary.
func (c *Client) DownloadSummary(ctx context.Context, id int64) ([]byte, error) {
	op := fmt.Sprintf("download summary %d", id)

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/summaries/%d/download", id), nil)
	if err != nil {
		return nil, &RequestError{Op: op, Cause: err}
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Resource: "summary", ID: id}
	}
	if err := c.checkStatus(op, resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSummaryPDFBytes))
	if err != nil {
		return nil, &RequestError{Op: op, Cause: err}
	}
	return data, nil
}

// DeleteSummary removes a saved summary. A second delete of the same id
// yields a NotFoundError; the caller reconciles its cached list.
func (c *Client) DeleteSummary(ctx context.Context, id int64) error {
	op := fmt.Sprintf("delete summary %d", id)

	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/summaries/%d", id), nil)
	if err != nil {
		return &RequestError{Op: op, Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: "summary", ID: id}
	}
	return c.checkStatus(op, resp)
}
