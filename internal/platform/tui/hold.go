package tui

import (
	"time"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// holdTracker turns terminal key presses into held keys. Terminals repeat a
// held key but never report its release, so a key counts as released once
// no repeat has arrived for the timeout. Until the first repeat arrives the
// longer initial timeout applies, covering the OS auto-repeat delay.
type holdTracker struct {
	initial uint64 // In ticks, before the first repeat
	repeat  uint64 // In ticks, between repeats
	keys    map[core.Action]heldKey
}

type heldKey struct {
	lastSeen  uint64 // Tick of the latest press
	repeating bool   // At least one repeat arrived since the first press
}

func newHoldTracker(initial, repeat time.Duration, tickRate int) *holdTracker {
	return &holdTracker{
		initial: durationTicks(initial, tickRate),
		repeat:  durationTicks(repeat, tickRate),
		keys:    make(map[core.Action]heldKey),
	}
}

// press records a key press at tick and forwards it to the frame.
func (h *holdTracker) press(a core.Action, tick uint64, frame *core.InputFrame) {
	k, held := h.keys[a]
	h.keys[a] = heldKey{lastSeen: tick, repeating: held && (k.repeating || tick > k.lastSeen)}
	frame.Set(a)
}

// expire releases every key whose last press is older than its timeout.
func (h *holdTracker) expire(tick uint64, frame *core.InputFrame) {
	for a, k := range h.keys {
		timeout := h.initial
		if k.repeating {
			timeout = h.repeat
		}
		if tick-k.lastSeen >= timeout {
			frame.Release(a)
			delete(h.keys, a)
		}
	}
}

// held reports whether a key is currently held.
func (h *holdTracker) held(a core.Action) bool {
	_, ok := h.keys[a]
	return ok
}
