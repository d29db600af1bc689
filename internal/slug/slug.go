// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns titles into URL path segments.
package slug

import (
	"strings"
	"unicode"
)

// Generate lowercases s and reduces it to runs of [a-z0-9] joined by single
// hyphens. Whitespace and hyphens separate runs; anything else is dropped,
// so "Rock & Roll" becomes "rock-roll". Returns "" when nothing survives.
func Generate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pending = false
		case unicode.IsSpace(r) || r == '-':
			pending = true
		}
	}
	return b.String()
}
