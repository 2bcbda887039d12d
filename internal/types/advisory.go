// Package types provides type definitions for structured data used throughout the advisor-agent system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Document represents one uploaded transcript. The remote service assigns
// numeric ids; they are carried as strings because the persisted document
// list is an opaque, append-only sequence of identifiers.
type Document struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Course is a single course match produced by the remote advisory service.
// Courses are read-only once produced.
type Course struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description,omitempty"`
	Match       float64 `json:"match" validate:"gte=0,lte=100"`
}

// Scholarship is a single scholarship match. The scholarship list is
// replaced wholesale on each fetch, never merged.
type Scholarship struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description,omitempty"`
	Match       float64 `json:"match" validate:"gte=0,lte=100"`
	Link        string  `json:"link,omitempty" validate:"omitempty,url"`
}

// Recommendation is the server-computed set of course and scholarship
// matches for a transcript. Exactly one recommendation is active at a time.
type Recommendation struct {
	ID           int64         `json:"id"`
	Courses      []Course      `json:"courses"`
	Scholarships []Scholarship `json:"scholarships"`
	CreatedAt    time.Time     `json:"created_at,omitempty"`
}

// Transcript is a previously uploaded transcript as listed by the service.
type Transcript struct {
	ID        int64     `json:"id"`
	FilePath  string    `json:"file_path,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Summary is a saved, persisted PDF artifact combining transcript analysis
// text and optionally scholarships.
type Summary struct {
	ID                  int64     `json:"id"`
	RecommendationID    int64     `json:"recommendation_id,omitempty"`
	Text                string    `json:"summary_text,omitempty"`
	IncludeScholarships bool      `json:"include_scholarships,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// SummaryRef identifies a freshly saved summary and its server-side artifact.
type SummaryRef struct {
	ID      int64  `json:"id"`
	PDFPath string `json:"pdf_path"`
}

// SaveSummaryRequest is the request body for persisting a summary.
type SaveSummaryRequest struct {
	RecommendationID    int64  `json:"recommendation_id" validate:"required"`
	SummaryText         string `json:"summary_text" validate:"required"`
	IncludeScholarships bool   `json:"include_scholarships"`
}

// Validate validates the SaveSummaryRequest using the validator.
func (r *SaveSummaryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
