package session

import (
	"lanefall/internal/engine"
	"lanefall/internal/game"
	"lanefall/internal/score"
)

// Sink is the presentation layer's view of a session. Every callback
// runs on the tick goroutine; implementations must not block.
type Sink interface {
	NoteSpawned(n *game.Note)
	NoteHit(n *game.Note, outcome engine.Outcome)
	NoteMissed(n *game.Note)
	Whiffed(lane uint8)
	ScoreChanged(s score.State)
	Finished(r *Results)
}

// NopSink is embedded by sinks that only care about some callbacks.
type NopSink struct{}

func (NopSink) NoteSpawned(*game.Note)             {}
func (NopSink) NoteHit(*game.Note, engine.Outcome) {}
func (NopSink) NoteMissed(*game.Note)              {}
func (NopSink) Whiffed(uint8)                      {}
func (NopSink) ScoreChanged(score.State)           {}
func (NopSink) Finished(*Results)                  {}
