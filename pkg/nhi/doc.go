// Package nhi validates New Zealand National Health Index (NHI) numbers
// against the HISO 10046:2023 Consumer Health Identity Standard.
//
// Two NHI formats are in circulation and both are accepted:
//
//   - Legacy:  three letters, four digits (LLLDDDD), e.g. ZAC5361.
//     The final digit is a mod 11 check digit.
//   - Current: three letters, two digits, two letters (LLLDDLL), e.g. ZBN77VL.
//     The final letter is a mod 23 check letter.
//
// Letters are drawn from the 24-letter NHI alphabet; I and O are never used.
// All checks are case-insensitive.
//
// Usage:
//
//	nhi.IsNHI("ZAC5361") // true
//	nhi.IsNHI("ZZZ0044") // false
//
//	id, err := nhi.Parse("zbn77vl")
//	if err != nil { ... }
//	id.String() // "ZBN77VL"
//
// Domain Purity: This package performs no I/O and keeps no mutable state.
// Every function is safe for concurrent use.
//
// A valid NHI is only consistent with the standard. It does not mean the
// number has been assigned to a person.
//
// NHI numbers beginning with Z are reserved for testing. IsNHI and Parse
// accept them; callers that must refuse test identifiers check NHI.IsTest
// after parsing.
package nhi
