package registry

import (
	"net/url"
	"strings"
)

// Normalize makes a candidate string protocol-qualified: anything that does
// not already carry an http scheme gets "http://" prepended. The result is
// what gets validated, probed and persisted.
func Normalize(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "http://" + raw
}

// IsValid reports whether a candidate string is a registrable URL. The check
// is purely syntactic: the normalized form must parse, carry an http or https
// scheme, and have a hostname containing at least one dot (bare hostnames
// like "localhost" are rejected). No network access happens here; see the
// probe package for reachability.
func IsValid(raw string) bool {
	u, err := url.Parse(Normalize(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.Contains(u.Hostname(), ".")
}

// Hostname extracts the host portion of a normalized URL, without port.
// Returns empty string if the URL does not parse.
func Hostname(normalized string) string {
	u, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
