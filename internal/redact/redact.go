// Package redact scrubs sensitive fragments from strings before they are
// written to logs: database connection strings, credentials, raw SQL, and
// host:port pairs. Error responses sent to clients never contain raw error
// text, so redaction applies only to server-side logging.
package redact

import (
	"regexp"
	"strings"
)

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	HostPlaceholder       = "[REDACTED_HOST]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

var (
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`)

	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|WHERE)(?:[\s\w,*()='"$]+)?`,
	)

	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`,
	)

	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	placeholders = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, CredentialPlaceholder},
		{passwordRegex, CredentialPlaceholder},
		{sqlRegex, SQLPlaceholder},
		{hostPortRegex, HostPlaceholder},
		{unixPathRegex, PathPlaceholder},
	}
)

// String returns s with every sensitive fragment replaced by its placeholder.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, p := range placeholders {
		s = p.pattern.ReplaceAllString(s, p.placeholder)
	}
	return s
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(String(err.Error()))
}
