package engine

import (
	"time"

	"lanefall/internal/game"
)

// Outcome is the result of judging one press.
type Outcome struct {
	NoteIndex int // -1 when no note was in reach
	Accuracy  game.Accuracy
	Value     int           // base score of the tier
	Distance  time.Duration // signed, now - target; early presses are negative
}

// Whiffed reports a press that reached no note. The caller treats it
// as a miss event: combo breaks, no note is consumed.
func (o Outcome) Whiffed() bool {
	return o.NoteIndex < 0
}

// Judge resolves presses against the active set using an ordered
// judgement table.
type Judge struct {
	chart  *game.Chart
	active *game.ActiveSet
	table  []game.Judgement
}

func NewJudge(chart *game.Chart, active *game.ActiveSet, table []game.Judgement) *Judge {
	return &Judge{chart: chart, active: active, table: table}
}

// Judge finds the spawned note in lane closest to now within the hit
// window, marks it hit and removes it from the active set. Ties on
// distance go to the earlier note. The active set is ordered by target
// time, so the scan can stop at the first note beyond reach.
func (j *Judge) Judge(lane uint8, now time.Duration) Outcome {
	window := game.HitWindow(j.table)

	best := -1
	bestAbs := time.Duration(1<<63 - 1)
	bestDist := time.Duration(0)
	for _, idx := range j.active.Indices() {
		n := j.chart.Note(idx)
		if n.Time-now > window {
			// Everything after this is even further in the future
			break
		}
		if n.Lane != lane || n.Status != game.StatusSpawned {
			continue
		}
		d := now - n.Time
		a := d
		if a < 0 {
			a = -a
		}
		if a < bestAbs {
			bestAbs = a
			bestDist = d
			best = idx
		}
	}

	if best < 0 {
		return Outcome{NoteIndex: -1}
	}
	tier, ok := game.Classify(j.table, bestAbs)
	if !ok {
		return Outcome{NoteIndex: -1}
	}
	if err := j.chart.Resolve(best, game.StatusHit, tier.Accuracy, now); nil != err {
		// The sweeper may never race us within a tick; a failure here
		// is an ordering bug upstream, not something to paper over.
		return Outcome{NoteIndex: -1}
	}
	j.active.Remove(best)
	return Outcome{
		NoteIndex: best,
		Accuracy:  tier.Accuracy,
		Value:     tier.Value,
		Distance:  bestDist,
	}
}
