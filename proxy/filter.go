package proxy

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Filter is a parsed log filter expression: a comma-separated list of
// "target=level" entries, each overriding the default level for logger
// events named after one of the TargetServe/TargetAccept/... constants.
//
// Example: "app::validate=debug,app::skip=warn".
type Filter struct {
	overrides map[string]zapcore.Level
}

// ParseFilter parses a filter expression. An empty expression yields a
// Filter with no overrides.
func ParseFilter(expr string) (Filter, error) {
	overrides := make(map[string]zapcore.Level)
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{overrides: overrides}, nil
	}

	for _, entry := range strings.Split(expr, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		target, levelStr, ok := strings.Cut(entry, "=")
		if !ok {
			return Filter{}, fmt.Errorf("malformed filter entry %q: expected target=level", entry)
		}
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
			return Filter{}, fmt.Errorf("filter entry %q: %w", entry, err)
		}
		overrides[strings.TrimSpace(target)] = level
	}
	return Filter{overrides: overrides}, nil
}

// levelFor returns the effective level for a named logger: its override if
// one was configured, otherwise fallback.
func (f Filter) levelFor(name string, fallback zapcore.Level) zapcore.Level {
	if f.overrides == nil {
		return fallback
	}
	if lvl, ok := f.overrides[name]; ok {
		return lvl
	}
	return fallback
}

// minLevel returns the most verbose level across fallback and every
// override, used to gate a shared zapcore.Core cheaply before the
// per-logger-name decision in filteringCore.Check.
func (f Filter) minLevel(fallback zapcore.Level) zapcore.Level {
	min := fallback
	for _, lvl := range f.overrides {
		if lvl < min {
			min = lvl
		}
	}
	return min
}
