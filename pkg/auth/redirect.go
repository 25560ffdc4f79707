package auth

import (
	"net/url"
	"strings"
)

// SanitizeRedirect validates a post-login redirect target against the
// application base URL. Relative paths are prefixed with the base; absolute
// URLs must share the base's origin; anything else - cross-origin targets,
// scheme-relative tricks, unparsable input - is replaced with the base URL.
// This is the open-redirect guard for the login flow.
func SanitizeRedirect(requested, base string) string {
	if requested == "" {
		return base
	}

	// "//evil.com" is scheme-relative, not a path.
	if strings.HasPrefix(requested, "/") && !strings.HasPrefix(requested, "//") {
		return strings.TrimRight(base, "/") + requested
	}

	target, err := url.Parse(requested)
	if err != nil {
		return base
	}
	origin, err := url.Parse(base)
	if err != nil {
		return base
	}

	if target.Scheme != origin.Scheme || target.Host != origin.Host {
		return base
	}
	return requested
}
