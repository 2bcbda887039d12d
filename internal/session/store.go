// Package session persists the small set of identifiers the advising
// workflow carries across runs: the active recommendation id and the ordered
// list of analyzed document ids.
package session

import "context"

// Keys for the two durable values. The names match what the web client
// stores in browser storage so a session survives a client swap.
const (
	// KeyLastRecommendationID holds the active recommendation id as decimal text.
	KeyLastRecommendationID = "last_reco_id"
	// KeyUploadedDocuments holds the ordered document-id list as a JSON array.
	KeyUploadedDocuments = "uploadedDocs"
)

// Store is a durable key/value port. There is a single logical writer (the
// workflow orchestrator), so implementations need no cross-process locking.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes key to value, overwriting any prior value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
