package service

import (
	"regexp"
	"strings"
)

// RestoreRequestMarker precedes the token in a restore request.
const RestoreRequestMarker = "ConnectionRestoreRequest:"

var restoreRequestPattern = regexp.MustCompile(
	regexp.QuoteMeta(RestoreRequestMarker) +
		`([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`)

// ParseRestoreRequest finds the first restore request embedded in msg and
// returns its token in lowercase canonical form.
func ParseRestoreRequest(msg string) (string, bool) {
	m := restoreRequestPattern.FindStringSubmatch(msg)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// FormatRestoreRequest builds the message a client sends to restore token.
func FormatRestoreRequest(token string) string {
	return RestoreRequestMarker + token
}
