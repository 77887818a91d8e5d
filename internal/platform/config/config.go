// Package config reads process configuration from environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"doomscroll/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. "CORE_ROLLUP_"
// New() is the unprefixed root; Prefix narrows it for a module
type Conf struct{ prefix string }

// New returns the root Conf
func New() Conf { return Conf{} }

// Prefix returns a child Conf, cfg.Prefix("CORE_").Prefix("ROLLUP_") -> CORE_ROLLUP_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it was non-empty
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

func (c Conf) missing(k string) {
	logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
}

// MustString panics when key is missing or blank
func (c Conf) MustString(key string) string {
	v, ok := c.lookup(key)
	if !ok {
		c.missing(key)
	}
	return v
}

// MustInt panics when key is missing or not an integer
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustPort validates 1..65535 and returns a listen addr like ":4000"
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// MayString returns def when key is missing or blank
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns def when key is missing; an unparsable value warns and returns def
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
		return def
	}
	return v
}

// MayPositiveInt is MayInt that also rejects values < 1
func (c Conf) MayPositiveInt(key string, def int) int {
	v := c.MayInt(key, def)
	if v < 1 {
		logger.Get().Warn().Str("key", c.key(key)).Int("value", v).Int("default", def).Msg("non-positive int; using default")
		return def
	}
	return v
}

// MayBool returns def when key is missing; an unparsable value warns and returns def
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
		return def
	}
	return v
}

// MayDuration accepts Go durations ("90s", "30m")
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
		return def
	}
	return d
}

// MaySeconds reads an integer count of seconds, e.g. CORE_ROLLUP_INTERVAL_SECONDS=1800
func (c Conf) MaySeconds(key string, def time.Duration) time.Duration {
	n := c.MayInt(key, -1)
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

// MayLocation resolves an IANA zone name; "Local" and "UTC" are accepted as-is
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Str("default", def.String()).Msg("unknown time zone; using default")
		return def
	}
	return loc
}

// MayEnum returns def when missing and panics when the value is not in allowed
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	if v == "" {
		return v
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
