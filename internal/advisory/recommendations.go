package advisory

import (
	"context"
	"encoding/json"

	"github.com/jonathan/advisor-agent/internal/schemas"
	"github.com/jonathan/advisor-agent/internal/types"
)

type createRecommendationRequest struct {
	TranscriptID int64 `json:"transcript_id"`
}

// CreateRecommendation asks the service to compute a recommendation for the
// given transcript.
func (c *Client) CreateRecommendation(ctx context.Context, transcriptID int64) (*types.Recommendation, error) {
	const op = "create recommendation"
	return c.recommendation(ctx, op, "/recommendations", createRecommendationRequest{TranscriptID: transcriptID})
}

// RegenerateRecommendation recomputes a recommendation from the caller's
// latest transcript. The service decides whether a transcript exists; the
// client does not precheck.
func (c *Client) RegenerateRecommendation(ctx context.Context) (*types.Recommendation, error) {
	const op = "regenerate recommendation"
	return c.recommendation(ctx, op, "/recommendations/generate", nil)
}

func (c *Client) recommendation(ctx context.Context, op, path string, body any) (*types.Recommendation, error) {
	var raw json.RawMessage
	if err := c.postJSON(ctx, op, path, body, &raw); err != nil {
		return nil, err
	}

	if err := schemas.Recommendation(raw); err != nil {
		return nil, &ContractError{Op: op, Cause: err}
	}

	var reco types.Recommendation
	if err := json.Unmarshal(raw, &reco); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}
	return &reco, nil
}
