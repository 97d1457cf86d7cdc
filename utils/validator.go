package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	GSTINLength = 15
	IFSCLength  = 11
)

var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// ValidationKind tells a length failure apart from a pattern failure.
type ValidationKind string

const (
	KindLength ValidationKind = "length"
	KindFormat ValidationKind = "format"
)

// ValidationError is returned when an identifier fails a format check.
// Message is safe to show to API callers as-is.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	GSTINValidMessage  = "Valid GSTIN"
	GSTINLengthMessage = "GSTIN must be 15 characters long"
	GSTINFormatMessage = "Invalid GSTIN format"

	IFSCValidMessage  = "Valid IFSC code"
	IFSCLengthMessage = "IFSC code must be 11 characters long"
	IFSCFormatMessage = "Invalid IFSC code format"
)

// ValidateGSTIN checks a normalized GSTIN. It returns nil when the GSTIN
// has the right length and structure.
func ValidateGSTIN(gstin string) error {
	if utf8.RuneCountInString(gstin) != GSTINLength {
		return &ValidationError{Kind: KindLength, Message: GSTINLengthMessage}
	}
	if !gstinPattern.MatchString(gstin) {
		return &ValidationError{Kind: KindFormat, Message: GSTINFormatMessage}
	}
	return nil
}

// ValidateIFSC checks a normalized IFSC code.
func ValidateIFSC(ifsc string) error {
	if utf8.RuneCountInString(ifsc) != IFSCLength {
		return &ValidationError{Kind: KindLength, Message: IFSCLengthMessage}
	}
	if !ifscPattern.MatchString(ifsc) {
		return &ValidationError{Kind: KindFormat, Message: IFSCFormatMessage}
	}
	return nil
}

// NormalizeIdentifier trims surrounding whitespace and uppercases the input.
func NormalizeIdentifier(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ExtractPAN returns the PAN embedded in a GSTIN (characters 3 to 12).
// Callers must validate the GSTIN first.
func ExtractPAN(gstin string) string {
	if len(gstin) < 12 {
		return ""
	}
	return gstin[2:12]
}
