package brokerage

import "github.com/etnz/brokerage/date"

// Date re-exports date.Date so that most callers only import this package.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses an ISO-8601 date like "2025-01-10".
func ParseDate(s string) (Date, error) { return date.Parse(s) }
