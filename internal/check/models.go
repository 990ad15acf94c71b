package check

import "nhi/pkg/nhi"

// Reason explains why a value was not accepted.
type Reason string

// Rejection reasons. An accepted value has an empty Reason.
const (
	ReasonNone               Reason = ""
	ReasonInvalidFormat      Reason = "invalid_format"
	ReasonReservedForTesting Reason = "reserved_for_testing"
)

// Options carries caller policy applied after validation.
type Options struct {
	// ExcludeTest rejects NHIs reserved for testing (Z prefix).
	ExcludeTest bool
}

// Result is the outcome of checking one value.
type Result struct {
	Input  string
	NHI    nhi.NHI // zero unless Valid
	Valid  bool
	Format nhi.Format
	Test   bool
	Reason Reason
}

// outcome labels the result for metrics.
func (r Result) outcome() string {
	if r.Valid {
		return "valid"
	}
	return string(r.Reason)
}
