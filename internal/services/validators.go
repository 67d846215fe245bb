package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const minBirthYear = 1900

// ValidatePersonName accepts a name made only of letters with at least minLen runes.
// A minLen below 1 means any non-empty alphabetic string.
func ValidatePersonName(text string, minLen int) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	if utf8.RuneCountInString(text) < minLen {
		return "", false
	}
	return text, true
}

// ParseBirthDay accepts 1..31 and returns it zero padded. Calendar validity is not checked.
func ParseBirthDay(text string) (string, bool) {
	n, ok := parseBounded(text, 1, 31)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d", n), true
}

// ParseBirthMonth accepts 1..12 and returns it zero padded.
func ParseBirthMonth(text string) (string, bool) {
	n, ok := parseBounded(text, 1, 12)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d", n), true
}

// ParseBirthYear accepts 1900..currentYear inclusive.
func ParseBirthYear(text string, currentYear int) (string, bool) {
	n, ok := parseBounded(text, minBirthYear, currentYear)
	if !ok {
		return "", false
	}
	return strconv.Itoa(n), true
}

// parseBounded parses a plain run of ASCII digits (no sign, no spaces inside) within [lo, hi].
func parseBounded(text string, lo, hi int) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > 9 {
		return 0, false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
