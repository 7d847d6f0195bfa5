// Package audio provides the playback-position clock a session judges
// against, backed by beep's speaker.
package audio

import (
	"fmt"
	"math"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
)

// Clock decodes a music file and exposes its playback position as
// chart time. Rate scales both the speaker sample rate and the
// reported position, so a 1.2x run still lines up with chart targets.
type Clock struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	rate     float64
	started  bool
}

func Open(file string, rate float64) (*Clock, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(file) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format %q", path.Ext(file))
	}
	if nil != err {
		f.Close()
		return nil, err
	}

	if rate <= 0 {
		rate = 1.0
	}
	return &Clock{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
		rate:     rate,
	}, nil
}

// Start initializes the speaker and begins playback after delay.
func (c *Clock) Start(delay time.Duration) error {
	sr := beep.SampleRate(math.Round(float64(c.format.SampleRate) * c.rate))
	if err := speaker.Init(sr, c.format.SampleRate.N(time.Second/60)); nil != err {
		return err
	}
	go func() {
		time.Sleep(delay)
		speaker.Play(c.ctrl)
	}()
	c.started = true
	return nil
}

// Now is the current chart time: stream position scaled back up by the
// playback rate.
func (c *Clock) Now() time.Duration {
	speaker.Lock()
	pos := c.streamer.Position()
	speaker.Unlock()
	d := c.format.SampleRate.D(pos)
	return time.Duration(math.Round(float64(d) * c.rate))
}

func (c *Clock) Playing() bool {
	if !c.started {
		return false
	}
	speaker.Lock()
	paused := c.ctrl.Paused
	pos := c.streamer.Position()
	length := c.streamer.Len()
	speaker.Unlock()
	return !paused && pos < length
}

func (c *Clock) SetPaused(paused bool) {
	speaker.Lock()
	c.ctrl.Paused = paused
	speaker.Unlock()
}

func (c *Clock) Close() error {
	return c.streamer.Close()
}
