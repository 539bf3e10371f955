package utils

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Both storage and lookups go through it so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email is a bare address (no display name,
// no angle brackets) with a local part and a dotted domain. "localhost" is
// the one domain allowed without a dot.
func ValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if domain == "localhost" {
		return true
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
