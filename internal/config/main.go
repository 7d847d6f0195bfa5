package config

import (
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/alecthomas/kingpin.v2"

	"lanefall/internal/game"
)

var (
	Directory     = kingpin.Arg("directory", "Song/chart directory").Required().ExistingDir()
	Difficulty    = kingpin.Flag("difficulty", "Difficulty name, first in file if empty").Short('D').Envar("LANEFALL_DIFFICULTY").String()
	Rate          = kingpin.Flag("rate", "Playback speed").Default("1.0").Short('r').Float64()
	Delay         = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	TickPeriod    = kingpin.Flag("tick-period", "Session tick period").Default("1ms").Short('p').Duration()
	NoteSpeed     = kingpin.Flag("speed", "Note travel speed in playfield units per second").Default("1.0").Short('s').Float64()
	SpawnDistance = kingpin.Flag("spawn-distance", "Playfield units from spawn line to hit line").Default("1.0").Float64()
	MissGrace     = kingpin.Flag("miss-grace", "How long past its target a note may still be hit").Default("135ms").Duration()
	ReleaseGrace  = kingpin.Flag("release-grace", "Slack before a hold end that still counts as held").Default("250ms").Duration()
	NotesPerStep  = kingpin.Flag("notes-per-step", "Consecutive hits per multiplier step").Default("10").Int()
	MaxMultiplier = kingpin.Flag("max-multiplier", "Multiplier cap").Default("4").Int()
	DBPath        = kingpin.Flag("db", "Run history database").Default("./scores.db").Envar("LANEFALL_DB").String()
	keys4         = kingpin.Flag("keys-single", "Keys for 4k").Default("_-mp").Short('k').String()
	keys6         = kingpin.Flag("keys-solo", "Keys for 6k").Default("ieotsc").String()
	keys8         = kingpin.Flag("keys-double", "Keys for 8k").Default("ieonhtsc").String()
)

// Judgements is the accuracy table, tightest window first. The last
// entry's window is the hit window; anything further is a whiff.
var Judgements = []game.Judgement{
	{Window: 25 * time.Millisecond, Accuracy: game.AccuracyPerfect, Value: 100, Name: "Perfect"},
	{Window: 55 * time.Millisecond, Accuracy: game.AccuracyGreat, Value: 70, Name: "Great"},
	{Window: 90 * time.Millisecond, Accuracy: game.AccuracyGood, Value: 40, Name: "Good"},
	{Window: 135 * time.Millisecond, Accuracy: game.AccuracyOkay, Value: 20, Name: "Okay"},
}

func Keys(nKeys uint8) []rune {
	switch nKeys {
	case 4:
		return []rune(*keys4)
	case 6:
		return []rune(*keys6)
	case 8:
		return []rune(*keys8)
	}
	return []rune(*keys4)
}

// Parse loads .env overrides then the command line. Must run before
// any flag value is read.
func Parse() {
	_ = godotenv.Load()
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
