// Package parser provides the small amount of SQL text analysis the runner
// needs: query classification for metrics labels and placeholder counting
// for drivers that do not expose parameter metadata.
package parser

import (
	"regexp"
	"strings"
)

// QueryType represents the type of SQL query
type QueryType int

const (
	QueryUnknown QueryType = iota
	QuerySelect
	QueryInsert
	QueryUpdate
	QueryDelete
)

// Match query type (allows comments before keyword)
var queryTypeRegex = regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b`)

// Classify determines the query type from the first SQL keyword
func Classify(query string) QueryType {
	if matches := queryTypeRegex.FindStringSubmatch(query); matches != nil {
		switch strings.ToUpper(matches[1]) {
		case "SELECT":
			return QuerySelect
		case "INSERT":
			return QueryInsert
		case "UPDATE":
			return QueryUpdate
		case "DELETE":
			return QueryDelete
		}
	}
	return QueryUnknown
}

// TypeLabel returns the metrics label for a query
func TypeLabel(query string) string {
	switch Classify(query) {
	case QuerySelect:
		return "SELECT"
	case QueryInsert:
		return "INSERT"
	case QueryUpdate:
		return "UPDATE"
	case QueryDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// IsWritable returns true if query is a write operation (INSERT, UPDATE, DELETE)
func IsWritable(query string) bool {
	switch Classify(query) {
	case QueryInsert, QueryUpdate, QueryDelete:
		return true
	default:
		return false
	}
}

// CountPlaceholders counts the ? placeholders in a query, skipping string
// literals, quoted identifiers, line comments and block comments. Doubled
// quotes inside a literal ('it''s') do not terminate it.
func CountPlaceholders(query string) int {
	count := 0
	i := 0
	n := len(query)

	for i < n {
		c := query[i]
		switch c {
		case '\'', '"', '`':
			// Skip quoted section, honoring doubled-quote escapes
			quote := c
			i++
			for i < n {
				if query[i] == quote {
					if i+1 < n && query[i+1] == quote {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
		case '-':
			if i+1 < n && query[i+1] == '-' {
				// Line comment runs to end of line
				for i < n && query[i] != '\n' {
					i++
				}
			} else {
				i++
			}
		case '/':
			if i+1 < n && query[i+1] == '*' {
				i += 2
				for i+1 < n && !(query[i] == '*' && query[i+1] == '/') {
					i++
				}
				if i+1 < n {
					i += 2
				} else {
					i = n
				}
			} else {
				i++
			}
		case '?':
			count++
			i++
		default:
			i++
		}
	}
	return count
}
