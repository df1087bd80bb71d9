package stage

import "strings"

func sanitizeErrorMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}

// SanitizeMessage collapses whitespace so a message fits on one line.
func SanitizeMessage(msg string) string {
	return sanitizeErrorMessage(msg)
}
