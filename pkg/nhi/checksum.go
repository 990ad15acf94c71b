package nhi

import "regexp"

// alphabet is the 24-letter NHI alphabet. A letter's value is its 1-based
// position here, so I and O never contribute to a checksum.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// checkAlphabet lists the symbols a current-format check letter can take,
// indexed from 1 by 23 - (sum mod 23). Z (value 24) can never be produced.
const checkAlphabet = "ABCDEFGHJKLMNPQRSTUVWXY"

const (
	legacyModulus  = 11
	currentModulus = 23
)

var (
	legacyPattern  = regexp.MustCompile(`^[A-HJ-NP-Z]{3}[0-9]{4}$`)
	currentPattern = regexp.MustCompile(`^[A-HJ-NP-Z]{3}[0-9]{2}[A-HJ-NP-Z]{2}$`)
)

// charValue returns the checksum value of an upper-case NHI character:
// digits are worth their face value, letters their position in alphabet.
// Characters outside both sets are worth -1.
func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		for i := 0; i < len(alphabet); i++ {
			if alphabet[i] == c {
				return i + 1
			}
		}
	}
	return -1
}

// weightedSum multiplies the first six characters by 7, 6, 5, 4, 3, 2 and
// sums the products. The caller guarantees s has already matched a pattern.
func weightedSum(s string) int {
	sum := 0
	for i := 0; i < 6; i++ {
		sum += charValue(s[i]) * (7 - i)
	}
	return sum
}

// legacyCheckDigit returns the check digit for a six-character legacy prefix.
// ok is false when the prefix sums to 0 mod 11: no digit can complete it.
func legacyCheckDigit(prefix string) (digit byte, ok bool) {
	remainder := weightedSum(prefix) % legacyModulus
	if remainder == 0 {
		return 0, false
	}
	// A computed check value of 10 is written as 0.
	return byte('0' + (legacyModulus-remainder)%10), true
}

// currentCheckLetter returns the check letter for a six-character
// current-format prefix. A remainder of 0 selects the last symbol, Y.
func currentCheckLetter(prefix string) byte {
	k := currentModulus - weightedSum(prefix)%currentModulus
	return checkAlphabet[k-1]
}

// isLegacy reports whether an upper-cased value is a legacy NHI with a
// matching check digit.
func isLegacy(s string) bool {
	if !legacyPattern.MatchString(s) {
		return false
	}
	digit, ok := legacyCheckDigit(s[:6])
	return ok && s[6] == digit
}

// isCurrent reports whether an upper-cased value is a current-format NHI with
// a matching check letter.
func isCurrent(s string) bool {
	if !currentPattern.MatchString(s) {
		return false
	}
	return s[6] == currentCheckLetter(s[:6])
}
