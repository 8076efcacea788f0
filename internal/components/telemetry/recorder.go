package telemetry

import (
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelWarning
	LevelBroken
	LevelCount
)

type Event struct {
	Level  Level
	ID     string
	Params []any
	Count  int64
}

// Recorder keeps every report in memory so tests can assert on them.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) push(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.push(Event{Level: LevelBroken, ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.push(Event{Level: LevelWarning, ID: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.push(Event{Level: LevelDebug, ID: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.push(Event{Level: LevelCount, ID: id, Count: count})
}

// Events returns a copy of the recorded events at the given level.
func (r *Recorder) Events(level Level) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the events at the given level whose id ends with suffix.
func (r *Recorder) Find(level Level, suffix string) []Event {
	var out []Event
	for _, e := range r.Events(level) {
		if strings.HasSuffix(e.ID, suffix) {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
