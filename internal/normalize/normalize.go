// Package normalize cleans raw merchant names from bank exports into a
// canonical upper-case form suitable for dictionary lookup.
package normalize

import (
	"regexp"
	"strings"
)

var (
	processorPrefix = regexp.MustCompile(`(?i)^(TST\* ?|SQ ?\* ?)`)
	storeCode       = regexp.MustCompile(`#\s?\d+`)
	phoneNumber     = regexp.MustCompile(`\b\d{3,}-?\d{3,}-?\d{3,}\b`)
	digitRun        = regexp.MustCompile(`\b\d{3,}\b`)
	dotCom          = regexp.MustCompile(`(?i)\.com\b`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// Clean removes payment-processor prefixes, store codes, phone numbers,
// standalone digit runs and ".com" from a merchant name, collapsing whitespace
// and upper-casing the result.
//
// The passes run in a fixed order: prefix and store-code removal must precede
// phone and digit stripping so numeric store codes are not consumed as phone
// numbers. Clean never fails; malformed input yields a possibly-empty string.
// Clean is idempotent.
func Clean(raw string) string {
	text := strings.ToUpper(raw)
	text = stripProcessorPrefix(text)
	text = stripStoreCodes(text)
	text = stripPhoneNumbers(text)
	text = stripDigitRuns(text)
	text = stripDotCom(text)
	return collapseWhitespace(text)
}

// stripProcessorPrefix removes a leading "TST*" or "SQ*" payment-processor tag.
func stripProcessorPrefix(text string) string {
	return processorPrefix.ReplaceAllString(text, "")
}

// stripStoreCodes removes store codes such as "#791" or "# 20816".
func stripStoreCodes(text string) string {
	return storeCode.ReplaceAllString(text, "")
}

// stripPhoneNumbers removes phone-number-like sequences such as
// "919-678-1444", "3122422019" or "191-99518925".
func stripPhoneNumbers(text string) string {
	return phoneNumber.ReplaceAllString(text, "")
}

// stripDigitRuns removes any standalone run of three or more digits that is
// not part of a larger alphanumeric token.
func stripDigitRuns(text string) string {
	return digitRun.ReplaceAllString(text, "")
}

// stripDotCom removes a ".com" suffix or embedded occurrence.
func stripDotCom(text string) string {
	return dotCom.ReplaceAllString(text, "")
}

// collapseWhitespace reduces runs of whitespace to a single space and trims.
func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
