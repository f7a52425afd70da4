package drive

import "github.com/vovakirdan/portfolio-drive/internal/core"

// Controls holds the currently held driving keys.
// Only key events change them; the motion step reads them.
type Controls struct {
	Forward bool
	Left    bool
	Right   bool
}

// apply updates the flags from one frame of key events. Presses are
// applied before releases. A forward press is reported separately so the
// caller can turn it into a manual advance instead of motion.
func (c *Controls) apply(in core.InputFrame, forwardBlocked bool) (forwardPressed bool) {
	if in.Has(core.ActionForward) {
		forwardPressed = true
		if !forwardBlocked {
			c.Forward = true
		}
	}
	if in.Has(core.ActionLeft) {
		c.Left = true
	}
	if in.Has(core.ActionRight) {
		c.Right = true
	}

	if in.WasReleased(core.ActionForward) {
		c.Forward = false
	}
	if in.WasReleased(core.ActionLeft) {
		c.Left = false
	}
	if in.WasReleased(core.ActionRight) {
		c.Right = false
	}
	return forwardPressed
}
