package game

import (
	"time"
)

// Judgement is one accuracy tier. A slice of these, ordered by Window
// ascending, makes up the judgement table; the last entry's window is
// the hit window.
type Judgement struct {
	Window   time.Duration
	Accuracy Accuracy
	Value    int // base score before the multiplier
	Name     string
}

// Classify walks the table and returns the tier for an absolute hit
// distance, or false when the distance is outside the hit window.
func Classify(table []Judgement, distance time.Duration) (Judgement, bool) {
	if distance < 0 {
		distance = -distance
	}
	for _, j := range table {
		if distance <= j.Window {
			return j, true
		}
	}
	return Judgement{}, false
}

// HitWindow is the outermost window of the table.
func HitWindow(table []Judgement) time.Duration {
	if len(table) == 0 {
		return 0
	}
	return table[len(table)-1].Window
}
