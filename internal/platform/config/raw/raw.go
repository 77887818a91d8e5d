// Package raw is a logger-free env reader for bootstrap code.
// The logger reads its own settings through it, so it must not import logger.
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed env view, e.g. raw.New().Prefix("LOG_")
type Conf struct{ prefix string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix returns a child view
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) val(key string) string {
	return strings.TrimSpace(os.Getenv(c.prefix + key))
}

// Get returns the trimmed value or def
func (c Conf) Get(key, def string) string {
	if v := c.val(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1/true/yes/on, case-insensitive. Anything else set is false.
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.val(key)) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt parses a non-negative integer; signs or garbage fall back to def
func (c Conf) GetInt(key string, def int) int {
	v := c.val(key)
	if v == "" || strings.ContainsAny(v, "+-") {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
