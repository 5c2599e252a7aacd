package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
)

// keySource hands terminal events to the single-threaded core. In polling
// mode a read returns immediately; in modal mode it waits for an event or an
// interrupt signal.
type keySource struct {
	events      <-chan tcell.Event
	interrupt   <-chan os.Signal
	closed      bool
	interrupted bool
}

func (k *keySource) next(mode inputMode) (tcell.Event, bool) {
	if k.closed || k.interrupted {
		return nil, false
	}
	if mode == modeModal {
		select {
		case ev, ok := <-k.events:
			return k.received(ev, ok)
		case <-k.interrupt:
			k.interrupted = true
			return nil, false
		}
	}
	select {
	case ev, ok := <-k.events:
		return k.received(ev, ok)
	default:
		return nil, false
	}
}

func (k *keySource) received(ev tcell.Event, ok bool) (tcell.Event, bool) {
	if !ok || ev == nil {
		k.closed = true
		return nil, false
	}
	return ev, true
}

func (k *keySource) checkInterrupt() bool {
	if k.interrupted {
		return true
	}
	select {
	case <-k.interrupt:
		k.interrupted = true
	default:
	}
	return k.interrupted
}

func (k *keySource) stopped() bool {
	return k.closed || k.interrupted
}

// pumpEvents feeds screen events into a channel; the channel closes when the
// screen is finalized.
func pumpEvents(screen tcell.Screen) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()
	return events
}
