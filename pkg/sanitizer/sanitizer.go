// Package sanitizer normalizes user-supplied strings before validation
// and persistence. Normalization is lossy on purpose: comparisons and
// uniqueness checks run on the normalized forms.
package sanitizer

import (
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

// NormalizeEmail lowercases and trims; the unique index on newsletter
// subscriptions relies on this form.
func NormalizeEmail(email string) string {
	p := Pipeline{trim, lower}
	return p.Apply(email)
}

// NormalizeTag normalizes amenity/feature tags.
func NormalizeTag(tag string) string {
	p := Pipeline{trim, collapseWhitespace, lower}
	return p.Apply(tag)
}
