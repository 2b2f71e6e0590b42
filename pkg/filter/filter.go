// Package filter builds SoftLayer object filters. The emitted structure is
// part of the wire contract with the API, so the translation rules here are
// byte-for-byte compatible with what the portal tooling sends.
package filter

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Filter is a nested object filter, keyed by property path segments with an
// {"operation": ...} leaf at the bottom.
type Filter map[string]any

// New returns an empty filter.
func New() Filter {
	return Filter{}
}

// Set places leaf at the dotted property path, creating intermediate maps as
// needed, and returns the filter for chaining.
func (f Filter) Set(path string, leaf any) Filter {
	parts := strings.Split(path, ".")
	node := map[string]any(f)
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = leaf
	return f
}

// JSON renders the filter as compact JSON for the objectFilter query
// parameter.
func (f Filter) JSON() (string, error) {
	b, err := json.Marshal(map[string]any(f))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Operators the query grammar passes through unchanged when used as an
// explicit prefix.
var knownOperations = []string{
	">=", "<=", "~", "!~", "*=", "^=", "$=", "_=", ">", "<", "!=", "=",
}

// Query translates a query-style string into an operation leaf:
//
//	"10"     -> {"operation": 10}            numeric comparison
//	"*web*"  -> {"operation": "~ web"}       contains
//	"web*"   -> {"operation": "^= web"}      starts with
//	"*web"   -> {"operation": "$= web"}      ends with
//	"> 5"    -> {"operation": "> 5"}         explicit operator
//	"web"    -> {"operation": "_= web"}      exact match
func Query(query string) map[string]any {
	query = strings.TrimSpace(query)
	if n, err := strconv.Atoi(query); err == nil {
		return map[string]any{"operation": n}
	}

	for _, op := range knownOperations {
		if strings.HasPrefix(query, op) {
			rest := strings.TrimSpace(strings.TrimPrefix(query, op))
			return map[string]any{"operation": op + " " + rest}
		}
	}

	switch {
	case strings.HasPrefix(query, "*") && strings.HasSuffix(query, "*"):
		query = "~ " + strings.Trim(query, "*")
	case strings.HasPrefix(query, "*"):
		query = "$= " + strings.Trim(query, "*")
	case strings.HasSuffix(query, "*"):
		query = "^= " + strings.Trim(query, "*")
	default:
		query = "_= " + query
	}
	return map[string]any{"operation": query}
}

// NotNull matches any non-null value.
func NotNull() map[string]any {
	return map[string]any{"operation": "not null"}
}
