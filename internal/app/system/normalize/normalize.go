// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical string forms stored in Mongo.
// Every write path goes through these so uniqueness checks (email,
// department code) compare like with like.
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

// Code uppercases and trims a department code ("cse " -> "CSE").
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
