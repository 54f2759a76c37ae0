// Package api provides HTTP API handlers for the AFIDs validation service.
package api

import (
	"time"

	"github.com/afids/afids-go/internal/store"
	"github.com/afids/afids-go/pkg/fcsv"
)

// ValidateResponse is the response for POST /api/v1/validate.
type ValidateResponse struct {
	Valid     bool             `json:"valid"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version,omitempty"`
	Code      string           `json:"code,omitempty"`
	Line      int              `json:"line,omitempty"`
	Fiducials *fcsv.ParsedFile `json:"fiducials,omitempty"`
	SetID     string           `json:"set_id,omitempty"`
	Duplicate bool             `json:"duplicate,omitempty"`
}

// SetSummary represents a stored set in API responses.
type SetSummary struct {
	ID        string             `json:"id"`
	Source    string             `json:"source"`
	Digest    string             `json:"digest"`
	Version   string             `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	Columns   map[string]float64 `json:"columns"`
}

// SetDetailResponse is the response for GET /api/v1/sets/:id.
type SetDetailResponse struct {
	SetSummary
	Fiducials *fcsv.ParsedFile `json:"fiducials"`
}

// SetListResponse is the response for GET /api/v1/sets.
type SetListResponse struct {
	Sets  []SetSummary `json:"sets"`
	Total int          `json:"total"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func summarize(s *store.Set) SetSummary {
	return SetSummary{
		ID:        s.ID,
		Source:    s.Source,
		Digest:    s.Digest,
		Version:   s.Fiducials.Version().String(),
		CreatedAt: s.CreatedAt,
		Columns:   s.Columns(),
	}
}
