// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "regexp"

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 6

// emailRe is deliberately loose: anything shaped user@host.tld passes and
// the mail server has the final word.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool {
	return emailRe.MatchString(s)
}
