package auth

import (
	"regexp"
	"strings"
)

var consecutiveDots = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an address and collapses consecutive
// dots in the local part. Invalid shapes are returned unchanged so that
// lookups still fail on the original input.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}

	local = consecutiveDots.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// IsPlaceholderEmail reports whether the address was synthesized by the
// identity resolver rather than supplied by a provider. Placeholder
// addresses live under a reserved ".local" provider domain and must never
// be treated as verified, deliverable mail.
func IsPlaceholderEmail(email string) bool {
	_, domain, ok := strings.Cut(email, "@")
	return ok && strings.HasSuffix(domain, ".local")
}

// splitName breaks a display name into a first token and the remainder.
func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
