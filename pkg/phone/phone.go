package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalize formats a raw feed phone number as E.164 for the given default
// region. Feeds deliver numbers in whatever shape the lead typed them in;
// normalizing here keeps the store's identity fields comparable across
// feeds. Unparseable input is returned trimmed but otherwise untouched.
func Normalize(raw, defaultRegion string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	num, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsValidNumber(num) {
		return trimmed
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}

// IsValid reports whether the number parses and is valid for the region
func IsValid(raw, defaultRegion string) bool {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
