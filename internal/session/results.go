package session

import (
	"time"
)

// Results is the terminal summary of a session. Once produced, nothing
// in the session mutates again.
type Results struct {
	Song       string
	Artist     string
	Difficulty string

	Score    int
	MaxCombo int

	PerfectCount int
	GreatCount   int
	GoodCount    int
	OkayCount    int
	MissCount    int
	TotalNotes   int64

	AccuracyPercent   float64
	CompletionPercent float64

	// Signed hit distance statistics over every hit note
	MeanError  time.Duration
	StdevError time.Duration
}
