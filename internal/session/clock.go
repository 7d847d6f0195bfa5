package session

import (
	"time"
)

// Clock is the playback position a session judges against, already in
// chart time (playback rate applied by the provider). It may stall but
// must never run backwards; the session guards against jitter anyway.
type Clock interface {
	Now() time.Duration
	Playing() bool
	SetPaused(paused bool)
}
