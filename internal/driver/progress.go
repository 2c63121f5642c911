package driver

import "time"

// Stage is the per-fixture step a progress event refers to.
type Stage string

const (
	StageLoad   Stage = "load"
	StageReplay Stage = "replay"
	StageRender Stage = "render"
)

type Status string

const (
	// StatusQueued indicates the fixture is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the fixture is inside Stage.
	StatusWorking Status = "working"
	// StatusCached indicates the output came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the fixture is done.
	StatusDone Status = "done"
	// StatusError indicates the fixture failed.
	StatusError Status = "error"
)

// Event reports progress of one fixture. File is the fixture path as
// listed by Analyze.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events from worker goroutines; implementations
// must be safe for concurrent use.
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

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
