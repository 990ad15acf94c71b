package handler

import (
	"nhi/internal/check"
)

// CheckResponse is the HTTP response for a single checked value.
type CheckResponse struct {
	Input  string `json:"input"`
	NHI    string `json:"nhi,omitempty"`
	Valid  bool   `json:"valid"`
	Format string `json:"format,omitempty"`
	Test   bool   `json:"test"`
	Reason string `json:"reason,omitempty"`
}

// BatchCheckResponse is the HTTP response for POST /nhi/check/batch.
type BatchCheckResponse struct {
	Results    []CheckResponse `json:"results"`
	ValidCount int             `json:"valid_count"`
}

// FromResult converts a check result to an HTTP response.
func FromResult(res check.Result) CheckResponse {
	return CheckResponse{
		Input:  res.Input,
		NHI:    res.NHI.String(),
		Valid:  res.Valid,
		Format: res.Format.String(),
		Test:   res.Test,
		Reason: string(res.Reason),
	}
}

// FromResults converts batch results, counting the valid ones.
func FromResults(results []check.Result) BatchCheckResponse {
	resp := BatchCheckResponse{Results: make([]CheckResponse, 0, len(results))}
	for _, res := range results {
		if res.Valid {
			resp.ValidCount++
		}
		resp.Results = append(resp.Results, FromResult(res))
	}
	return resp
}
