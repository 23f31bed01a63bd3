package chi

import (
	domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"
	"github.com/kailas-cloud/sigimsae/internal/domain/record"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/result"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeRecordNotFound     ErrorCode = "record_not_found"
	ErrorCodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// RecordResponse is the wire form of a catalog record.
type RecordResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	InstrumentID    string   `json:"instrumentId"`
	InstrumentName  string   `json:"instrumentName"`
	CategoryID      string   `json:"categoryId"`
	CategoryName    string   `json:"categoryName"`
	Filename        string   `json:"filename,omitempty"`
	ImagePath       string   `json:"imagePath,omitempty"`
	AutoAlign       bool     `json:"autoalign"`
	RightColumnOnly bool     `json:"rightColumnOnly"`
	RelevanceScore  *float64 `json:"relevanceScore,omitempty"`
}

// ListResponse wraps a record list.
type ListResponse struct {
	Items []RecordResponse `json:"items"`
	Total int              `json:"total"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Items []RecordResponse `json:"items"`
	Total int              `json:"total"`
	Stats result.Stats     `json:"stats"`
}

// StringsResponse wraps a string list (history, suggestions, categories).
type StringsResponse struct {
	Items []string `json:"items"`
}

// InstrumentsResponse wraps the instrument list.
type InstrumentsResponse struct {
	Items []domcat.Instrument `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Records int               `json:"records"`
}

func recordToResponse(r *record.Record) RecordResponse {
	m := r.Meta()
	return RecordResponse{
		ID:              r.ID(),
		Name:            r.Name(),
		Description:     r.Description(),
		InstrumentID:    m.InstrumentID,
		InstrumentName:  r.InstrumentName(),
		CategoryID:      m.CategoryID,
		CategoryName:    r.CategoryName(),
		Filename:        m.Filename,
		ImagePath:       m.ImagePath,
		AutoAlign:       m.AutoAlign,
		RightColumnOnly: m.RightColumnOnly,
	}
}

func resultToResponse(res *result.Result) RecordResponse {
	rec := res.Record()
	out := recordToResponse(&rec)
	if res.Scored() {
		score := res.Score()
		out.RelevanceScore = &score
	}
	return out
}

func recordsToResponse(records []record.Record) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i := range records {
		out[i] = recordToResponse(&records[i])
	}
	return out
}
