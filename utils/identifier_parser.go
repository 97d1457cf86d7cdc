package utils

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	gstinInText = regexp.MustCompile(`\b[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]\b`)
	ifscInText  = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
)

// FindGSTINs returns every GSTIN-shaped token in text, de-duplicated in the
// order they first appear.
func FindGSTINs(text string) []string {
	return findUnique(gstinInText, strings.ToUpper(text))
}

// FindIFSCs returns every IFSC-shaped token in text, de-duplicated in the
// order they first appear.
func FindIFSCs(text string) []string {
	return findUnique(ifscInText, strings.ToUpper(text))
}

func findUnique(re *regexp.Regexp, text string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range re.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// ExpandQRPayload returns the QR text together with the decoded claims when
// the payload is a signed JWT, as printed on GST e-invoices. Other payloads
// (UPI links, plain text) are returned unchanged.
func ExpandQRPayload(payload string) string {
	parts := strings.Split(strings.TrimSpace(payload), ".")
	if len(parts) != 3 {
		return payload
	}

	header, ok := decodeSegment(parts[0])
	if !ok || !gjson.GetBytes(header, "alg").Exists() {
		return payload
	}
	claims, ok := decodeSegment(parts[1])
	if !ok {
		return payload
	}

	// e-invoice claims nest the invoice JSON as an escaped string
	decoded := strings.ReplaceAll(string(claims), `\"`, `"`)
	return payload + "\n" + decoded
}

// decodeSegment base64url-decodes one JWT segment and requires a JSON object.
func decodeSegment(segment string) ([]byte, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
	if err != nil || !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, false
	}
	return raw, true
}
