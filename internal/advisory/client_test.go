package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/advisor-agent/internal/types"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, StaticToken("test-token"))
	require.NoError(t, err)
	return client, server
}

func TestNewClientRejectsInvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "Empty", baseURL: ""},
		{name: "No scheme", baseURL: "example.org/api"},
		{name: "No host", baseURL: "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL, nil)
			assert.Error(t, err)
		})
	}
}

func TestUploadTranscript(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transcripts/upload", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "transcript.pdf", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7})
	}))

	id, err := client.UploadTranscript(context.Background(), "transcript.pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestCreateRecommendation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommendations", r.URL.Path)

		var req struct {
			TranscriptID int64 `json:"transcript_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7), req.TranscriptID)

		_, _ = w.Write([]byte(`{
			"id": 42,
			"courses": [
				{"id": 1, "title": "Distributed Systems", "description": "builds on prior coursework", "match": 95.2},
				{"id": 2, "title": "Machine Learning", "match": 88},
				{"id": 3, "title": "Databases", "match": 74.5}
			],
			"scholarships": []
		}`))
	}))

	reco, err := client.CreateRecommendation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), reco.ID)
	require.Len(t, reco.Courses, 3)
	assert.Equal(t, "Distributed Systems", reco.Courses[0].Title)
	assert.InDelta(t, 95.2, reco.Courses[0].Match, 0.001)
	assert.Empty(t, reco.Scholarships)
}

func TestCreateRecommendationContractViolation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 42, "courses": [{"title": "ML", "match": 150}]}`))
	}))

	_, err := client.CreateRecommendation(context.Background(), 7)
	require.Error(t, err)

	var contractErr *ContractError
	assert.True(t, errors.As(err, &contractErr), "expected ContractError, got %T", err)
}

func TestRegenerateRecommendation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommendations/generate", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 43, "courses": [], "scholarships": [{"title": "STEM Grant", "match": 81, "link": "https://example.org/grant"}]}`))
	}))

	reco, err := client.RegenerateRecommendation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(43), reco.ID)
	require.Len(t, reco.Scholarships, 1)
	assert.Equal(t, "STEM Grant", reco.Scholarships[0].Title)
}

func TestGenerateScholarships(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scholarships/generate", r.URL.Path)
		_, _ = w.Write([]byte(`{"scholarships": [
			{"title": "DeepMind AI Scholarship", "description": "Supports AI students", "match": 95.3, "link": "https://example.org/a"},
			{"title": "Women in CS Award", "match": 82}
		]}`))
	}))

	scholarships, err := client.GenerateScholarships(context.Background())
	require.NoError(t, err)
	require.Len(t, scholarships, 2)
	assert.Equal(t, "DeepMind AI Scholarship", scholarships[0].Title)
	assert.Equal(t, "Women in CS Award", scholarships[1].Title)
}

func TestGenerateSummaryText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summaries/generate", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"summary_text": "Strong systems background."})
	}))

	text, err := client.GenerateSummaryText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Strong systems background.", text)
}

func TestSaveSummary(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summaries", r.URL.Path)

		var req types.SaveSummaryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.RecommendationID)
		assert.True(t, req.IncludeScholarships)

		_ = json.NewEncoder(w).Encode(map[string]any{"id": 5, "pdf_path": "/data/summaries/summary_42.pdf"})
	}))

	ref, err := client.SaveSummary(context.Background(), types.SaveSummaryRequest{
		RecommendationID:    42,
		SummaryText:         "Strong systems background.",
		IncludeScholarships: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), ref.ID)
	assert.Equal(t, "/data/summaries/summary_42.pdf", ref.PDFPath)
}

func TestSaveSummaryInvalidRequestIssuesNoHTTP(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))

	_, err := client.SaveSummary(context.Background(), types.SaveSummaryRequest{RecommendationID: 42})
	assert.Error(t, err)
	assert.Zero(t, requests)
}

func TestListSummariesPreservesServerOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/summaries", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": 3, "recommendation_id": 42, "created_at": "2026-02-01T10:00:00Z"},
			{"id": 1, "recommendation_id": 40, "created_at": "2026-01-15T09:30:00Z"},
			{"id": 2, "recommendation_id": 41, "created_at": "2026-01-20T12:00:00Z"}
		]`))
	}))

	summaries, err := client.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, int64(3), summaries[0].ID)
	assert.Equal(t, int64(1), summaries[1].ID)
	assert.Equal(t, int64(2), summaries[2].ID)
}

func TestDownloadSummary(t *testing.T) {
	pdf := []byte("%PDF-1.4 summary body")
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summaries/5/download", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))

	data, err := client.DownloadSummary(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestDownloadSummaryNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.DownloadSummary(context.Background(), 99)
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(99), notFound.ID)
}

func TestDeleteSummary(t *testing.T) {
	deleted := map[string]bool{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if deleted[r.URL.Path] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		deleted[r.URL.Path] = true
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteSummary(context.Background(), 5))

	err := client.DeleteSummary(context.Background(), 5)
	require.Error(t, err)
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(t *testing.T, err error)
	}{
		{
			name:   "401 maps to AuthError",
			status: http.StatusUnauthorized,
			body:   `{"error": "token expired"}`,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				assert.True(t, errors.As(err, &authErr))
			},
		},
		{
			name:   "500 carries remote message",
			status: http.StatusInternalServerError,
			body:   `{"error": "ollama failed: connection refused"}`,
			check: func(t *testing.T, err error) {
				var remoteErr *RemoteError
				require.True(t, errors.As(err, &remoteErr))
				assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
				assert.Equal(t, "ollama failed: connection refused", remoteErr.Message)
			},
		},
		{
			name:   "500 with unparseable body falls back to generic message",
			status: http.StatusInternalServerError,
			body:   `<html>boom</html>`,
			check: func(t *testing.T, err error) {
				var remoteErr *RemoteError
				require.True(t, errors.As(err, &remoteErr))
				assert.Equal(t, "request failed", remoteErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.GenerateSummaryText(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNetworkFailureIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)
	server.Close()

	_, err = client.ListSummaries(context.Background())
	require.Error(t, err)

	var reqErr *RequestError
	assert.True(t, errors.As(err, &reqErr))
	assert.True(t, IsRetryable(err))

	var remoteErr *RemoteError
	assert.False(t, errors.As(err, &remoteErr))
	assert.False(t, IsRetryable(&RemoteError{Op: "x", StatusCode: 500, Message: "boom"}))
}
