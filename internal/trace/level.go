package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // failures and warnings only
	LevelPhase               // suite boundaries
	LevelDetail              // + fixtures
	LevelDebug               // + individual checks
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit reports whether spans of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeSuite
	case LevelDetail:
		return scope <= ScopeFixture
	case LevelDebug:
		return true
	}
	return false
}

// accepts is the filter every tracer applies: heartbeats always pass, and
// point events pass from LevelError up so warnings survive a quiet level.
func (l Level) accepts(ev *Event) bool {
	switch {
	case l == LevelOff:
		return false
	case ev.Kind == KindHeartbeat:
		return true
	case ev.Kind == KindPoint:
		return true
	}
	return l.ShouldEmit(ev.Scope)
}
