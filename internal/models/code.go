package models

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxCodeInitials = 3

// foldName lowercases a property name, strips diacritics and drops every
// character that is not an ASCII letter, digit or space.
func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r == 'đ':
			b.WriteRune('d')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// GeneratePropertyCode derives a short code from a property name. A single word
// yields its first four characters, several words yield up to three initials.
func GeneratePropertyCode(name string) string {
	words := strings.Fields(foldName(name))
	if len(words) == 0 {
		return ""
	}

	if len(words) == 1 {
		word := words[0]
		if len(word) > 4 {
			word = word[:4]
		}
		return strings.ToUpper(word)
	}

	var initials strings.Builder
	for i, word := range words {
		if i == maxCodeInitials {
			break
		}
		initials.WriteByte(word[0])
	}
	return strings.ToUpper(initials.String())
}

// GenerateUniquePropertyCode returns the base code for name, or the base code
// with the first free two-digit suffix when it is already taken.
func GenerateUniquePropertyCode(name string, existing []string) string {
	base := GeneratePropertyCode(name)
	if base == "" || !slices.Contains(existing, base) {
		return base
	}

	for counter := 1; ; counter++ {
		code := fmt.Sprintf("%s%02d", base, counter)
		if !slices.Contains(existing, code) {
			return code
		}
	}
}
