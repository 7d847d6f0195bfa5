// Package render is a minimal stand-in for the host presentation
// layer: it prints judgements and the results summary to the terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"lanefall/internal/engine"
	"lanefall/internal/game"
	"lanefall/internal/score"
	"lanefall/internal/session"
)

type Console struct {
	session.NopSink

	out   io.Writer
	color bool
}

func NewConsole() *Console {
	return &Console{
		out:   os.Stdout,
		color: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func NewConsoleWriter(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color}
}

var accuracyColors = map[game.Accuracy]string{
	game.AccuracyPerfect: "\033[38;5;153m",
	game.AccuracyGreat:   "\033[1;36m",
	game.AccuracyGood:    "\033[1;32m",
	game.AccuracyOkay:    "\033[1;33m",
	game.AccuracyNone:    "\033[1;31m",
}

func (c *Console) paint(a game.Accuracy, s string) string {
	if !c.color {
		return s
	}
	return accuracyColors[a] + s + "\033[0m"
}

func (c *Console) NoteHit(n *game.Note, outcome engine.Outcome) {
	fmt.Fprintf(c.out, "%12v  lane %d  %+5.0f ms\n",
		c.paint(outcome.Accuracy, outcome.Accuracy.String()),
		n.Lane,
		float64(outcome.Distance)/float64(time.Millisecond))
}

func (c *Console) NoteMissed(n *game.Note) {
	fmt.Fprintf(c.out, "%12v  lane %d\n", c.paint(game.AccuracyNone, "Miss"), n.Lane)
}

func (c *Console) Whiffed(lane uint8) {
	fmt.Fprintf(c.out, "%12v  lane %d\n", c.paint(game.AccuracyNone, "Whiff"), lane)
}

func (c *Console) ScoreChanged(s score.State) {
	fmt.Fprintf(c.out, "%12v  %8d   combo %4d  x%d\n", "", s.Score, s.Combo, s.Multiplier)
}

func (c *Console) Finished(r *session.Results) {
	fmt.Fprintf(c.out, "\n%v - %v [%v]\n", r.Artist, r.Song, r.Difficulty)
	fmt.Fprintf(c.out, "      Score:  %8d\n", r.Score)
	fmt.Fprintf(c.out, "   Accuracy:  %7.2f%%\n", r.AccuracyPercent)
	fmt.Fprintf(c.out, "  Max Combo:  %8d\n", r.MaxCombo)
	fmt.Fprintf(c.out, "%v:  %8d\n", c.paint(game.AccuracyPerfect, "    Perfect"), r.PerfectCount)
	fmt.Fprintf(c.out, "%v:  %8d\n", c.paint(game.AccuracyGreat, "      Great"), r.GreatCount)
	fmt.Fprintf(c.out, "%v:  %8d\n", c.paint(game.AccuracyGood, "       Good"), r.GoodCount)
	fmt.Fprintf(c.out, "%v:  %8d\n", c.paint(game.AccuracyOkay, "       Okay"), r.OkayCount)
	fmt.Fprintf(c.out, "%v:  %8d\n", c.paint(game.AccuracyNone, "       Miss"), r.MissCount)
	fmt.Fprintf(c.out, "       Mean:  %7.2f ms\n", float64(r.MeanError)/float64(time.Millisecond))
	fmt.Fprintf(c.out, "      Stdev:  %7.2f ms\n", float64(r.StdevError)/float64(time.Millisecond))
}
