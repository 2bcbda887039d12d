// Package schemas provides JSON Schema validation for payloads received from
// the remote advisory service. The match-score range and required fields are
// part of the service's data contract; a violation here is a remote defect,
// not a client bug, and is reported as a typed error so callers can surface it.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("payload contract violated:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

const matchScoreSchema = `{
  "type": "number",
  "minimum": 0,
  "maximum": 100
}`

const courseSchema = `{
  "type": "object",
  "required": ["title", "match"],
  "properties": {
    "id": {"type": "integer"},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "match": ` + matchScoreSchema + `
  }
}`

const scholarshipSchema = `{
  "type": "object",
  "required": ["title", "match"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "match": ` + matchScoreSchema + `,
    "link": {"type": "string"}
  }
}`

const recommendationSchema = `{
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"type": "integer"},
    "courses": {"type": "array", "items": ` + courseSchema + `},
    "scholarships": {"type": "array", "items": ` + scholarshipSchema + `}
  }
}`

const scholarshipListSchema = `{
  "type": "object",
  "required": ["scholarships"],
  "properties": {
    "scholarships": {"type": "array", "items": ` + scholarshipSchema + `}
  }
}`

// Recommendation validates a recommendation payload against the wire contract.
func Recommendation(data []byte) error {
	return validateBytes("recommendation", recommendationSchema, data)
}

// ScholarshipList validates a scholarship generation payload against the wire contract.
func ScholarshipList(data []byte) error {
	return validateBytes("scholarship_list", scholarshipListSchema, data)
}

// validateBytes validates raw JSON against a named schema document.
func validateBytes(name, schema string, data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    name,
			Message: "validation could not run",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}
