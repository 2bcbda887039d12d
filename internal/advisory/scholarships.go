package advisory

import (
	"context"
	"encoding/json"

	"github.com/jonathan/advisor-agent/internal/schemas"
	"github.com/jonathan/advisor-agent/internal/types"
)

// GenerateScholarships asks the service for a fresh scholarship list for the
// caller's latest transcript. The returned list replaces any prior one; the
// client never merges.
func (c *Client) GenerateScholarships(ctx context.Context) ([]types.Scholarship, error) {
	const op = "generate scholarships"

	var raw json.RawMessage
	if err := c.postJSON(ctx, op, "/scholarships/generate", nil, &raw); err != nil {
		return nil, err
	}

	if err := schemas.ScholarshipList(raw); err != nil {
		return nil, &ContractError{Op: op, Cause: err}
	}

	var out struct {
		Scholarships []types.Scholarship `json:"scholarships"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}
	return out.Scholarships, nil
}
