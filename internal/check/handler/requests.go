package handler

import (
	"strings"

	dErrors "nhi/pkg/domain-errors"
)

// maxValueLength bounds a single submitted value. NHIs are 7 characters; the
// slack leaves room for callers that send padded input.
const maxValueLength = 64

// CheckRequest is the HTTP request body for POST /nhi/check.
type CheckRequest struct {
	NHI         string `json:"nhi"`
	ExcludeTest *bool  `json:"exclude_test,omitempty"`
}

// Normalize trims surrounding whitespace.
func (r *CheckRequest) Normalize() {
	r.NHI = strings.TrimSpace(r.NHI)
}

// Validate checks required fields and size limits.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.NHI) > maxValueLength {
		return dErrors.New(dErrors.CodeValidation, "nhi must be at most 64 characters")
	}
	if r.NHI == "" {
		return dErrors.New(dErrors.CodeValidation, "nhi is required")
	}
	return nil
}

// BatchCheckRequest is the HTTP request body for POST /nhi/check/batch.
type BatchCheckRequest struct {
	Values      []string `json:"values"`
	ExcludeTest *bool    `json:"exclude_test,omitempty"`
}

// Normalize trims surrounding whitespace from every value.
func (r *BatchCheckRequest) Normalize() {
	for i, v := range r.Values {
		r.Values[i] = strings.TrimSpace(v)
	}
}

// Validate checks per-value size limits. Batch size is enforced by the service.
func (r *BatchCheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Values) == 0 {
		return dErrors.New(dErrors.CodeValidation, "values is required")
	}
	for _, v := range r.Values {
		if len(v) > maxValueLength {
			return dErrors.New(dErrors.CodeValidation, "values must each be at most 64 characters")
		}
	}
	return nil
}
