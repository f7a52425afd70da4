package core

import "testing"

func TestInputFramePressRelease(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionForward)
	f.Release(ActionLeft)

	if !f.Has(ActionForward) {
		t.Error("Forward should be pressed")
	}
	if f.Has(ActionLeft) {
		t.Error("Left was released, not pressed")
	}
	if !f.WasReleased(ActionLeft) {
		t.Error("Left should be released")
	}

	clone := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear should drop all events")
	}
	if !clone.Has(ActionForward) || !clone.WasReleased(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionForward) || f.WasReleased(ActionForward) {
		t.Error("zero frame should report nothing")
	}
	f.Set(ActionRight)
	f.Release(ActionRight)
	if !f.Has(ActionRight) || !f.WasReleased(ActionRight) {
		t.Error("zero frame should allocate on first use")
	}
}

func TestActionString(t *testing.T) {
	if ActionForward.String() != "Forward" {
		t.Errorf("ActionForward.String() = %q", ActionForward.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action = %q", Action(99).String())
	}
}
