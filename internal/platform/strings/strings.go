// Package strings holds small string and slice helpers shared by modules
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes a mount path to "/x" form; a blank or root path panics
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/")
	if s == "/" {
		panic("mount prefix is required")
	}
	return s
}

// FirstNonEmpty returns the first argument with non-whitespace content
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if std.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// SplitList splits a comma separated setting, dropping blank items
func SplitList(s string) []string {
	var out []string
	for _, p := range std.Split(s, ",") {
		if p = std.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
