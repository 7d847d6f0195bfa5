// Package session drives one play of one chart: it owns the clock,
// runs the tick loop, and fans judged events out to the scoring engine
// and the presentation sink. All note mutation happens on the tick
// goroutine; inputs arriving in between are buffered and applied in
// arrival order at the next tick.
package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"lanefall/internal/engine"
	"lanefall/internal/game"
	"lanefall/internal/score"
)

// Input is one buffered player event. Pause toggles are honored even
// while frozen; everything else is dropped during a pause.
type Input struct {
	Lane     uint8
	Released bool
	Pause    bool
}

type Settings struct {
	Table        []game.Judgement
	MissGrace    time.Duration // clamped up to the hit window by New
	ReleaseGrace time.Duration // slack before a hold end still counts as held

	SpawnDistance float64 // playfield units from spawn line to hit line
	NoteSpeed     float64 // playfield units per second, runtime tunable

	NotesPerMultiplier int
	MaxMultiplier      int

	TickPeriod time.Duration
}

type Session struct {
	chart    *game.Chart
	clock    Clock
	sink     Sink
	settings Settings

	active  *game.ActiveSet
	sched   *engine.Scheduler
	judge   *engine.Judge
	sweeper *engine.Sweeper
	scoring *score.Engine

	speedMu sync.Mutex // NoteSpeed may be nudged from the input side

	now      time.Duration // monotonic; source jitter never rolls it back
	paused   bool
	held     []int // per-lane index of the hold being held, -1 when none
	resolved int64

	finished bool
	results  *Results
}

var (
	ErrNoChart = errors.New("session: no chart")
	ErrNoClock = errors.New("session: no audio clock")
)

func New(chart *game.Chart, clock Clock, sink Sink, settings Settings) (*Session, error) {
	if nil == chart || len(chart.Notes) == 0 {
		return nil, ErrNoChart
	}
	if nil == clock {
		return nil, ErrNoClock
	}
	if nil == sink {
		sink = NopSink{}
	}
	if settings.TickPeriod <= 0 {
		settings.TickPeriod = time.Millisecond
	}
	if window := game.HitWindow(settings.Table); settings.MissGrace < window {
		settings.MissGrace = window
	}

	active := game.NewActiveSet(chart)
	held := make([]int, chart.Difficulty.NKeys)
	for i := range held {
		held[i] = -1
	}

	return &Session{
		chart:    chart,
		clock:    clock,
		sink:     sink,
		settings: settings,
		active:   active,
		sched:    engine.NewScheduler(chart, active),
		judge:    engine.NewJudge(chart, active, settings.Table),
		sweeper:  engine.NewSweeper(chart, active),
		scoring:  score.NewEngine(settings.Table, settings.NotesPerMultiplier, settings.MaxMultiplier),
		held:     held,
	}, nil
}

// TravelDuration is how long a note is on the field before its target
// time, recomputed from the current speed every tick.
func (s *Session) TravelDuration() time.Duration {
	s.speedMu.Lock()
	speed := s.settings.NoteSpeed
	s.speedMu.Unlock()
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(s.settings.SpawnDistance / speed * float64(time.Second))
}

func (s *Session) SetNoteSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	s.speedMu.Lock()
	s.settings.NoteSpeed = speed
	s.speedMu.Unlock()
}

func (s *Session) Paused() bool {
	return s.paused
}

func (s *Session) setPaused(paused bool) {
	if s.paused == paused {
		return
	}
	s.paused = paused
	s.clock.SetPaused(paused)
}

func (s *Session) Score() score.State {
	return s.scoring.State()
}

// Tick processes one instant: spawn due notes, judge the buffered
// inputs in order, then sweep aged notes. Returns false once the
// session has finalized.
func (s *Session) Tick(inputs []Input) bool {
	if s.finished {
		return false
	}

	live := make([]Input, 0, len(inputs))
	for _, in := range inputs {
		if in.Pause {
			s.setPaused(!s.paused)
			continue
		}
		if !s.paused {
			live = append(live, in)
		}
	}
	if s.paused {
		return true
	}

	now := s.clock.Now()
	if now < s.now {
		now = s.now
	}
	s.now = now

	for _, idx := range s.sched.Advance(now, s.TravelDuration()) {
		s.sink.NoteSpawned(s.chart.Note(idx))
	}

	changed := false
	for _, in := range live {
		if in.Released {
			s.release(in.Lane, now, &changed)
			continue
		}
		outcome := s.judge.Judge(in.Lane, now)
		if outcome.Whiffed() {
			// A press with no reachable note still breaks the combo
			s.scoring.Miss()
			s.sink.Whiffed(in.Lane)
			changed = true
			continue
		}
		n := s.chart.Note(outcome.NoteIndex)
		s.scoring.Hit(outcome.Accuracy)
		s.resolved++
		if n.IsHold() && int(in.Lane) < len(s.held) {
			s.held[in.Lane] = n.Index
		}
		s.sink.NoteHit(n, outcome)
		changed = true
	}

	for _, idx := range s.sweeper.Sweep(now, s.settings.MissGrace) {
		s.scoring.Miss()
		s.resolved++
		s.sink.NoteMissed(s.chart.Note(idx))
		changed = true
	}

	// A hold survives once the clock passes its end
	for lane, idx := range s.held {
		if idx >= 0 && now >= s.chart.Note(idx).End() {
			s.held[lane] = -1
		}
	}

	if changed {
		s.sink.ScoreChanged(s.scoring.State())
	}

	if s.resolved >= s.chart.NoteCount && now >= s.chart.Duration() {
		s.finalize()
		return false
	}
	if !s.clock.Playing() && now >= s.chart.Duration() {
		// Playback ran out with notes still unresolved
		s.drain(now)
		s.finalize()
		return false
	}
	return true
}

// release handles a key-up on a lane. Letting go of a hold before its
// end, minus the grace, breaks the combo but does not re-judge the note.
func (s *Session) release(lane uint8, now time.Duration, changed *bool) {
	if int(lane) >= len(s.held) || s.held[lane] < 0 {
		return
	}
	idx := s.held[lane]
	s.held[lane] = -1
	n := s.chart.Note(idx)
	if err := s.chart.Release(idx, now); nil != err {
		return
	}
	if now < n.End()-s.settings.ReleaseGrace {
		s.scoring.HoldDrop()
		*changed = true
	}
}

// drain force-resolves everything left when playback has ended.
func (s *Session) drain(now time.Duration) {
	if s.finished {
		return
	}
	s.sched.Advance(now+s.chart.Duration(), s.chart.Duration())
	for _, idx := range s.sweeper.SweepAll(now) {
		s.scoring.Miss()
		s.resolved++
		s.sink.NoteMissed(s.chart.Note(idx))
	}
	s.sink.ScoreChanged(s.scoring.State())
}

func (s *Session) finalize() {
	if s.finished {
		return
	}
	s.finished = true

	state := s.scoring.State()
	res := &Results{
		Song:         s.chart.Song,
		Artist:       s.chart.Artist,
		Difficulty:   s.chart.Difficulty.Name,
		Score:        state.Score,
		MaxCombo:     state.MaxCombo,
		PerfectCount: state.Counts[game.AccuracyPerfect],
		GreatCount:   state.Counts[game.AccuracyGreat],
		GoodCount:    state.Counts[game.AccuracyGood],
		OkayCount:    state.Counts[game.AccuracyOkay],
		MissCount:    state.Counts[game.AccuracyNone],
		TotalNotes:   s.chart.NoteCount,
	}
	res.AccuracyPercent = state.AccuracyPercent(s.chart.NoteCount)
	res.CompletionPercent = res.AccuracyPercent

	res.MeanError, res.StdevError = s.errorStats()

	s.active.Clear()
	s.results = res
	s.sink.Finished(res)
}

// errorStats recomputes mean and stdev of signed hit distance from the
// chart itself, so no incremental counter can drift.
func (s *Session) errorStats() (time.Duration, time.Duration) {
	hits := 0
	sum := 0.0
	for i := range s.chart.Notes {
		n := s.chart.Note(i)
		if n.Status != game.StatusHit {
			continue
		}
		hits++
		sum += float64(n.HitTime - n.Time)
	}
	if hits == 0 {
		return 0, 0
	}
	mean := sum / float64(hits)
	if hits == 1 {
		return time.Duration(mean), 0
	}
	stdev := 0.0
	for i := range s.chart.Notes {
		n := s.chart.Note(i)
		if n.Status != game.StatusHit {
			continue
		}
		xi := float64(n.HitTime-n.Time) - mean
		stdev += xi * xi
	}
	stdev /= float64(hits - 1)
	return time.Duration(mean), time.Duration(math.Sqrt(stdev))
}

func (s *Session) Results() *Results {
	return s.results
}

// Run ticks the session until it finalizes, the input channel closes,
// or stop is closed. Inputs queued between ticks are applied at the
// next tick boundary in arrival order.
func (s *Session) Run(inputs <-chan Input, stop <-chan struct{}) (*Results, error) {
	ticker := time.NewTicker(s.settings.TickPeriod)
	defer ticker.Stop()

	buf := make([]Input, 0, 128)
	for {
		select {
		case <-stop:
			s.drain(s.now)
			s.finalize()
			return s.results, nil
		case <-ticker.C:
			buf = buf[:0]
		drained:
			for {
				select {
				case in, ok := <-inputs:
					if !ok {
						s.drain(s.now)
						s.finalize()
						return s.results, nil
					}
					buf = append(buf, in)
				default:
					break drained
				}
			}
			if !s.Tick(buf) {
				return s.results, nil
			}
		}
	}
}
