package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/advisor-agent/internal/advisory"
	"github.com/jonathan/advisor-agent/internal/browser"
	"github.com/jonathan/advisor-agent/internal/session"
	"github.com/jonathan/advisor-agent/internal/types"
)

// API is the advisory-service surface the orchestrator drives.
type API interface {
	UploadTranscript(ctx context.Context, filename string, content io.Reader) (int64, error)
	CreateRecommendation(ctx context.Context, transcriptID int64) (*types.Recommendation, error)
	RegenerateRecommendation(ctx context.Context) (*types.Recommendation, error)
	GenerateScholarships(ctx context.Context) ([]types.Scholarship, error)
	GenerateSummaryText(ctx context.Context) (string, error)
	SaveSummary(ctx context.Context, req types.SaveSummaryRequest) (types.SummaryRef, error)
	ListSummaries(ctx context.Context) ([]types.Summary, error)
	DownloadSummary(ctx context.Context, id int64) ([]byte, error)
	DeleteSummary(ctx context.Context, id int64) error
}

var _ API = (*advisory.Client)(nil)

// Orchestrator owns the in-memory workflow state. It is the single writer;
// every mutation happens under its mutex, and observers only ever see
// snapshots.
type Orchestrator struct {
	api         API
	store       session.Store
	browser     browser.Adapter
	onAuthError func()
	onChange    []func(Snapshot)

	mu           sync.Mutex
	stage        Stage
	busy         BusyLock
	activeRecoID int64
	documents    []string
	courses      []types.Course
	scholarships []types.Scholarship
	summaryText  string
	summaries    []types.Summary
	lastErr      error
	ingestGen    uint64
	recommendGen uint64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithBrowser injects the browser adapter used for redirects and downloads.
func WithBrowser(adapter browser.Adapter) Option {
	return func(o *Orchestrator) { o.browser = adapter }
}

// WithOnAuthError registers a hook invoked when the service answers 401,
// before the redirect. Typically clears the stored token.
func WithOnAuthError(fn func()) Option {
	return func(o *Orchestrator) { o.onAuthError = fn }
}

// WithOnChange registers a state-change observer. Observers are called
// after every transition, outside the orchestrator's lock.
func WithOnChange(fn func(Snapshot)) Option {
	return func(o *Orchestrator) { o.onChange = append(o.onChange, fn) }
}

// New creates an orchestrator and rehydrates the active recommendation id
// and document list from the session store. Malformed persisted values are
// discarded rather than poisoning the session.
func New(ctx context.Context, api API, store session.Store, opts ...Option) (*Orchestrator, error) {
	if api == nil {
		return nil, fmt.Errorf("advisory API is required")
	}
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}

	o := &Orchestrator{
		api:   api,
		store: store,
		stage: StageIdle,
		busy:  LockNone,
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.rehydrate(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) rehydrate(ctx context.Context) error {
	raw, ok, err := o.store.Get(ctx, session.KeyLastRecommendationID)
	if err != nil {
		return fmt.Errorf("failed to rehydrate session: %w", err)
	}
	if ok {
		if id, parseErr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); parseErr == nil && id > 0 {
			o.activeRecoID = id
			o.stage = StageRecommendationReady
		} else {
			_ = o.store.Remove(ctx, session.KeyLastRecommendationID)
		}
	}

	raw, ok, err = o.store.Get(ctx, session.KeyUploadedDocuments)
	if err != nil {
		return fmt.Errorf("failed to rehydrate session: %w", err)
	}
	if ok {
		var docs []string
		if parseErr := json.Unmarshal([]byte(raw), &docs); parseErr == nil {
			o.documents = docs
		} else {
			_ = o.store.Remove(ctx, session.KeyUploadedDocuments)
		}
	}
	return nil
}

// Snapshot returns a copy of the current workflow state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	snap := Snapshot{
		Stage:                  o.stage,
		Busy:                   o.busy,
		ActiveRecommendationID: o.activeRecoID,
		SummaryText:            o.summaryText,
		Err:                    o.lastErr,
	}
	snap.Documents = append(snap.Documents, o.documents...)
	snap.Courses = append(snap.Courses, o.courses...)
	snap.Scholarships = append(snap.Scholarships, o.scholarships...)
	snap.Summaries = append(snap.Summaries, o.summaries...)
	return snap
}

// notify delivers the current snapshot to observers, outside the lock.
func (o *Orchestrator) notify() {
	if len(o.onChange) == 0 {
		return
	}
	snap := o.Snapshot()
	for _, fn := range o.onChange {
		fn(snap)
	}
}

// acquire takes the busy lock or rejects immediately. No network request is
// issued on rejection.
func (o *Orchestrator) acquire(requested BusyLock) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy != LockNone {
		return &BusyError{Held: o.busy, Requested: requested}
	}
	o.busy = requested
	return nil
}

// fail releases the lock and records err. The lock is released on every
// exit path; a held lock after settlement would wedge the caller's UI
// permanently.
func (o *Orchestrator) fail(err error, toErrorStage bool) error {
	o.mu.Lock()
	o.busy = LockNone
	o.lastErr = err
	if toErrorStage {
		o.stage = StageError
	}
	o.mu.Unlock()
	o.notify()
	return o.handleAuth(err)
}

// handleAuth reacts to a 401: clear credentials via the hook and send the
// user to login. The error still propagates so the caller sees the failure.
func (o *Orchestrator) handleAuth(err error) error {
	var authErr *advisory.AuthError
	if errors.As(err, &authErr) {
		if o.onAuthError != nil {
			o.onAuthError()
		}
		if o.browser != nil {
			o.browser.Redirect("/login")
		}
	}
	return err
}

// IngestDocument uploads one transcript and immediately requests a
// recommendation for it. The two steps are one logical unit: no document is
// recorded and the active recommendation id is untouched unless both
// succeed. The uploaded transcript itself is not removable remotely; that
// inconsistency is accepted.
func (o *Orchestrator) IngestDocument(ctx context.Context, name string, content io.Reader) (types.Document, error) {
	if err := o.acquire(LockIngesting); err != nil {
		return types.Document{}, err
	}

	o.mu.Lock()
	o.ingestGen++
	gen := o.ingestGen
	o.stage = StageUploading
	o.mu.Unlock()
	o.notify()

	transcriptID, err := o.api.UploadTranscript(ctx, name, content)
	if err != nil {
		return types.Document{}, o.fail(err, true)
	}

	o.mu.Lock()
	o.stage = StageRecommendationPending
	o.mu.Unlock()
	o.notify()

	reco, err := o.api.CreateRecommendation(ctx, transcriptID)
	if err != nil {
		return types.Document{}, o.fail(err, true)
	}

	doc := types.Document{
		ID:          strconv.FormatInt(transcriptID, 10),
		DisplayName: name,
	}

	o.mu.Lock()
	if gen != o.ingestGen {
		o.busy = LockNone
		o.mu.Unlock()
		return types.Document{}, &SupersededError{Op: "ingest document"}
	}
	o.documents = append(o.documents, doc.ID)
	o.commitRecommendationLocked(reco)
	o.busy = LockNone
	docsJSON, _ := json.Marshal(o.documents)
	o.mu.Unlock()
	o.notify()

	if err := o.persist(ctx, reco.ID, string(docsJSON)); err != nil {
		return doc, err
	}
	return doc, nil
}

// GenerateRecommendation recomputes the recommendation from the latest
// transcript. The new id overwrites the active one; whether a transcript
// exists is the service's call, not prechecked here.
func (o *Orchestrator) GenerateRecommendation(ctx context.Context) (*types.Recommendation, error) {
	if err := o.acquire(LockRecommending); err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.recommendGen++
	gen := o.recommendGen
	o.stage = StageRecommendationPending
	o.mu.Unlock()
	o.notify()

	reco, err := o.api.RegenerateRecommendation(ctx)
	if err != nil {
		return nil, o.fail(err, true)
	}

	o.mu.Lock()
	if gen != o.recommendGen {
		o.busy = LockNone
		o.mu.Unlock()
		return nil, &SupersededError{Op: "generate recommendation"}
	}
	o.commitRecommendationLocked(reco)
	o.busy = LockNone
	o.mu.Unlock()
	o.notify()

	if err := o.persist(ctx, reco.ID, ""); err != nil {
		return reco, err
	}
	return reco, nil
}

// commitRecommendationLocked replaces the active recommendation state.
// Callers hold o.mu.
func (o *Orchestrator) commitRecommendationLocked(reco *types.Recommendation) {
	o.activeRecoID = reco.ID
	o.courses = reco.Courses
	o.scholarships = reco.Scholarships
	o.stage = StageRecommendationReady
	o.lastErr = nil
}

// persist writes the active recommendation id and, when non-empty, the
// document list through to the session store.
func (o *Orchestrator) persist(ctx context.Context, recoID int64, docsJSON string) error {
	if err := o.store.Set(ctx, session.KeyLastRecommendationID, strconv.FormatInt(recoID, 10)); err != nil {
		return fmt.Errorf("failed to persist recommendation id: %w", err)
	}
	if docsJSON != "" {
		if err := o.store.Set(ctx, session.KeyUploadedDocuments, docsJSON); err != nil {
			return fmt.Errorf("failed to persist document list: %w", err)
		}
	}
	return nil
}

// FetchScholarships replaces the scholarship list wholesale. Rejected
// immediately while any exclusive operation is in flight.
func (o *Orchestrator) FetchScholarships(ctx context.Context) ([]types.Scholarship, error) {
	if err := o.acquire(LockFetchingScholarships); err != nil {
		return nil, err
	}
	o.notify()

	scholarships, err := o.api.GenerateScholarships(ctx)
	if err != nil {
		return nil, o.fail(err, false)
	}

	o.mu.Lock()
	o.scholarships = scholarships
	o.lastErr = nil
	o.busy = LockNone
	o.mu.Unlock()
	o.notify()
	return scholarships, nil
}

// GenerateSummary produces the free-text transcript summary. The text lives
// in memory only until SaveSummary persists it.
func (o *Orchestrator) GenerateSummary(ctx context.Context) (string, error) {
	if err := o.acquire(LockGeneratingSummary); err != nil {
		return "", err
	}
	o.notify()

	text, err := o.api.GenerateSummaryText(ctx)
	if err != nil {
		return "", o.fail(err, false)
	}

	o.mu.Lock()
	o.summaryText = text
	o.lastErr = nil
	o.busy = LockNone
	o.mu.Unlock()
	o.notify()
	return text, nil
}

// SaveSummary persists the in-memory summary as a server-side PDF. Both
// preconditions are checked before the lock is taken and before any network
// call. The cached summary list is refetched from the server afterwards so
// ids and ordering are authoritative.
func (o *Orchestrator) SaveSummary(ctx context.Context, includeScholarships bool) (types.SummaryRef, error) {
	o.mu.Lock()
	recoID := o.activeRecoID
	text := o.summaryText
	o.mu.Unlock()

	if recoID == 0 {
		return types.SummaryRef{}, &ValidationError{Message: "Analyze a transcript before saving a summary."}
	}
	if strings.TrimSpace(text) == "" {
		return types.SummaryRef{}, &ValidationError{Message: "Generate a transcript summary before saving."}
	}

	if err := o.acquire(LockSaving); err != nil {
		return types.SummaryRef{}, err
	}
	o.notify()

	ref, err := o.api.SaveSummary(ctx, types.SaveSummaryRequest{
		RecommendationID:    recoID,
		SummaryText:         text,
		IncludeScholarships: includeScholarships,
	})
	if err != nil {
		return types.SummaryRef{}, o.fail(err, false)
	}

	// The save succeeded; a refresh failure only leaves the cached list
	// stale, so it is recorded but does not fail the operation.
	summaries, listErr := o.api.ListSummaries(ctx)

	o.mu.Lock()
	if listErr == nil {
		o.summaries = summaries
		o.lastErr = nil
	} else {
		o.lastErr = listErr
	}
	o.busy = LockNone
	o.mu.Unlock()
	o.notify()
	return ref, nil
}

// ListSummaries refreshes and returns the saved summaries. It only reads,
// so it does not participate in the busy lock.
func (o *Orchestrator) ListSummaries(ctx context.Context) ([]types.Summary, error) {
	summaries, err := o.api.ListSummaries(ctx)
	if err != nil {
		return nil, o.handleAuth(err)
	}

	o.mu.Lock()
	o.summaries = summaries
	o.mu.Unlock()
	o.notify()
	return summaries, nil
}

// DownloadSummary fetches the summary PDF and saves it through the browser
// adapter as summary_<id>.pdf, returning where it landed.
func (o *Orchestrator) DownloadSummary(ctx context.Context, id int64) (string, error) {
	data, err := o.api.DownloadSummary(ctx, id)
	if err != nil {
		return "", o.handleAuth(err)
	}

	if o.browser == nil {
		return "", fmt.Errorf("no browser adapter configured for downloads")
	}
	return o.browser.SaveBinary(data, fmt.Sprintf("summary_%d.pdf", id))
}

// DeleteSummary removes a saved summary. On success the cached list drops
// the id; on NotFoundError the cached list is left as-is and the error is
// returned so the caller can reconcile its display.
func (o *Orchestrator) DeleteSummary(ctx context.Context, id int64) error {
	if err := o.api.DeleteSummary(ctx, id); err != nil {
		var notFound *advisory.NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return o.handleAuth(err)
	}

	o.mu.Lock()
	kept := o.summaries[:0]
	for _, summary := range o.summaries {
		if summary.ID != id {
			kept = append(kept, summary)
		}
	}
	o.summaries = kept
	o.mu.Unlock()
	o.notify()
	return nil
}
