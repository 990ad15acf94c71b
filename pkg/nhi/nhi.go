package nhi

import (
	"errors"
	"strings"
)

// Format identifies which generation of the standard an NHI was issued under.
type Format string

// Supported NHI formats.
const (
	// FormatLegacy is the pre-2023 LLLDDDD format with a mod 11 check digit.
	FormatLegacy Format = "legacy"
	// FormatCurrent is the LLLDDLL format with a mod 23 check letter.
	FormatCurrent Format = "current"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// testPrefix marks NHI numbers reserved for testing.
const testPrefix = "Z"

// ErrInvalidFormat indicates a value is not a valid NHI number. Length,
// character and checksum failures are reported identically.
var ErrInvalidFormat = errors.New("invalid NHI format")

// NHI is a validated National Health Index number.
//
// Invariants:
//   - Upper-case, exactly 7 characters
//   - Matches the legacy or current format
//   - Carries a correct check character
//
// The zero value holds no NHI; see IsZero.
type NHI struct {
	value string
}

// IsNHI reports whether s is a valid NHI number in either format.
// The check is case-insensitive and never fails: any input that is not a
// valid NHI, including the empty string, yields false.
func IsNHI(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse validates s and returns it as an NHI. The stored value is upper-cased.
// Legacy format is tried before current format.
// Returns ErrInvalidFormat when s is not a valid NHI.
func Parse(s string) (NHI, error) {
	upper := strings.ToUpper(s)
	if isLegacy(upper) || isCurrent(upper) {
		return NHI{value: upper}, nil
	}
	return NHI{}, ErrInvalidFormat
}

// MustParse parses s, panicking if it is not a valid NHI.
// Use only in tests or when the value is known to be valid.
func MustParse(s string) NHI {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the upper-cased NHI value.
func (n NHI) String() string {
	return n.value
}

// IsZero returns true if this is the zero value (uninitialized).
func (n NHI) IsZero() bool {
	return n.value == ""
}

// Format returns the format the NHI matched. The zero value has no format.
func (n NHI) Format() Format {
	switch {
	case n.IsZero():
		return ""
	case n.value[5] >= '0' && n.value[5] <= '9':
		return FormatLegacy
	default:
		return FormatCurrent
	}
}

// IsTest returns true if the NHI is reserved for testing.
// This says nothing about whether a non-test NHI has been assigned.
func (n NHI) IsTest() bool {
	return strings.HasPrefix(n.value, testPrefix)
}

// IsNotTest returns true if the NHI is not reserved for testing.
func (n NHI) IsNotTest() bool {
	return !n.IsZero() && !n.IsTest()
}

// Compare orders NHIs by their normalized value. It returns -1, 0 or +1.
func (n NHI) Compare(other NHI) int {
	return strings.Compare(n.value, other.value)
}

// MarshalText implements encoding.TextMarshaler.
func (n NHI) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must be a
// valid NHI; it is normalized to upper case.
func (n *NHI) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
