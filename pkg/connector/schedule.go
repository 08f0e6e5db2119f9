package connector

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is one display frame.
const FrameInterval = time.Second / 60

// Reason records what asked for a measurement.
type Reason string

const (
	ReasonLayout Reason = "layout"
	ReasonResize Reason = "resize"
	ReasonToggle Reason = "toggle"
	ReasonData   Reason = "data"
)

// FrameMsg arrives one frame after Schedule was called.
type FrameMsg struct {
	Gen    uint64
	Reason Reason
	At     time.Time
}

// FrameScheduler defers connector measurement to the frame after a layout
// change has been committed. Every Schedule supersedes the previous one:
// older frames still arrive but Due rejects them, so a burst of changes ends
// in exactly one measurement.
//
// It is owned by a single bubbletea Update loop and is not safe for
// concurrent use.
type FrameScheduler struct {
	Interval time.Duration

	gen     uint64
	handled uint64
}

// Schedule returns a command that delivers a FrameMsg one frame from now.
func (s *FrameScheduler) Schedule(reason Reason) tea.Cmd {
	s.gen++
	gen := s.gen
	interval := s.Interval
	if interval <= 0 {
		interval = FrameInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, Reason: reason, At: t}
	})
}

// Due reports whether msg is the newest scheduled frame and has not been
// handled yet. A true result marks it handled.
func (s *FrameScheduler) Due(msg FrameMsg) bool {
	if msg.Gen != s.gen || msg.Gen == s.handled {
		return false
	}
	s.handled = msg.Gen
	return true
}

// Pending reports whether a scheduled frame has not been handled yet.
func (s *FrameScheduler) Pending() bool {
	return s.gen != s.handled
}

// Generation returns the number of the newest scheduled frame.
func (s *FrameScheduler) Generation() uint64 {
	return s.gen
}
