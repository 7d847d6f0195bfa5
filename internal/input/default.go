// Package input maps raw key events to lane presses for the session.
// Terminal keyboards only report presses, so release events never
// originate here; hold release tracking relies on providers that have
// key-up information.
package input

import (
	"fmt"

	"github.com/eiannone/keyboard"

	"lanefall/internal/session"
)

// Listen opens the keyboard and forwards lane presses on the returned
// channel. Escape closes the stop channel, space queues a pause
// toggle. Close tears the keyboard down.
func Listen(keys []rune, lanes uint8) (<-chan session.Input, <-chan struct{}, error) {
	if int(lanes) > len(keys) {
		return nil, nil, fmt.Errorf("have %d lane keys, chart wants %d", len(keys), lanes)
	}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, nil, fmt.Errorf("unable to open keyboard: %w", err)
	}

	inputs := make(chan session.Input, 128)
	stop := make(chan struct{})
	go func() {
		defer close(inputs)
		for key := range keyChannel {
			if key.Key == keyboard.KeyEsc {
				close(stop)
				return
			}
			if key.Key == keyboard.KeySpace {
				inputs <- session.Input{Pause: true}
				continue
			}
			lane := laneFor(keys, lanes, key.Rune)
			if lane < 0 {
				continue
			}
			inputs <- session.Input{Lane: uint8(lane)}
		}
	}()
	return inputs, stop, nil
}

func laneFor(keys []rune, lanes uint8, r rune) int {
	for i := uint8(0); i < lanes; i++ {
		if keys[i] == r {
			return int(i)
		}
	}
	return -1
}

func Close() error {
	return keyboard.Close()
}
