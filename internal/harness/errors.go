package harness

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscovery wraps every fixture discovery failure.
	ErrDiscovery = errors.New("fixture discovery failed")
	// ErrConfig wraps invalid harness configuration.
	ErrConfig = errors.New("invalid harness configuration")
)

// FailureKind classifies a failed check.
type FailureKind uint8

const (
	KindFixtureDefect FailureKind = iota + 1
	KindParse
	KindSnapshotDrift
	KindRoundTrip
	KindNewlines
	KindLexErrors
	KindLexIncompatible
	KindOracleInconsistency
	KindIO
)

func (k FailureKind) String() string {
	switch k {
	case KindFixtureDefect:
		return "fixture-defect"
	case KindParse:
		return "parse"
	case KindSnapshotDrift:
		return "snapshot-drift"
	case KindRoundTrip:
		return "round-trip"
	case KindNewlines:
		return "newlines"
	case KindLexErrors:
		return "lex-errors"
	case KindLexIncompatible:
		return "lex-incompatible"
	case KindOracleInconsistency:
		return "oracle-inconsistency"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Hard reports whether a failure of this kind stops the remaining checks
// of a fixture.
func (k FailureKind) Hard() bool {
	return k != KindSnapshotDrift
}

// CheckError is a failed check of one fixture.
type CheckError struct {
	Kind    FailureKind
	Fixture string
	Msg     string
	Err     error
}

func (e *CheckError) Error() string {
	var msg string
	if e.Fixture != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Kind, e.Fixture, e.Msg)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CheckError) Unwrap() error { return e.Err }

func checkErr(kind FailureKind, fixture string, err error, format string, args ...any) *CheckError {
	return &CheckError{Kind: kind, Fixture: fixture, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first CheckError in err's tree, or 0.
func KindOf(err error) FailureKind {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// IsHard reports whether err contains a hard CheckError or any error that
// is not a CheckError at all.
func IsHard(err error) bool {
	if err == nil {
		return false
	}
	var ce *CheckError
	if !errors.As(err, &ce) {
		return true
	}
	if ce.Kind.Hard() {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if IsHard(e) {
				return true
			}
		}
	}
	return false
}
