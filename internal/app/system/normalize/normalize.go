// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for user-entered
// identity fields. Stores normalize on write and on lookup so the same
// input always hits the same document.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
