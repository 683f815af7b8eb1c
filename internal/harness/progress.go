package harness

import "time"

// Stage is one check inside a case.
type Stage string

const (
	StageOracle    Stage = "oracle"
	StageParse     Stage = "parse"
	StageSnapshot  Stage = "snapshot"
	StageRoundTrip Stage = "roundtrip"
	StageNewlines  Stage = "newlines"
	StageLex       Stage = "lex"
)

// Stages lists the fixture checks in execution order.
var Stages = []Stage{StageOracle, StageParse, StageSnapshot, StageRoundTrip, StageNewlines, StageLex}

// Status captures progress state of a case.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Event reports progress for a case (or for the whole run when Case is
// empty).
type Event struct {
	Case    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
