package services

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowers a group name into a URL-safe slug: letters and digits kept,
// runs of anything else collapsed to single hyphens.
func Slugify(name string) string {
	var builder strings.Builder
	lastHyphen := true
	for _, character := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(character) || unicode.IsDigit(character) {
			builder.WriteRune(character)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			builder.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(builder.String(), "-")
}

// NextAvailableSlug returns base if free, otherwise base-1, base-2, ... up to
// the first suffix not present in taken.
func NextAvailableSlug(base string, taken []string) string {
	inUse := make(map[string]struct{}, len(taken))
	for _, slug := range taken {
		inUse[slug] = struct{}{}
	}

	if _, exists := inUse[base]; !exists {
		return base
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		if _, exists := inUse[candidate]; !exists {
			return candidate
		}
	}
}
