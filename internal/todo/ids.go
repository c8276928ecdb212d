package todo

import "time"

// IDSource hands out task ids.
type IDSource interface {
	NextID() int64
}

// ClockIDs derives ids from the wall clock in milliseconds. Two tasks
// created within the same millisecond get consecutive ids instead of
// colliding, so ids stay unique and strictly increasing.
type ClockIDs struct {
	now  func() time.Time
	last int64
}

// NewClockIDs returns a clock-backed id source. A nil now uses time.Now.
func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

// NextID returns max(now in ms, previous id + 1).
func (c *ClockIDs) NextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// SequenceIDs numbers tasks 1, 2, 3, ... which keeps script output stable.
type SequenceIDs struct {
	next int64
}

// NextID returns the next number in the sequence.
func (s *SequenceIDs) NextID() int64 {
	s.next++
	return s.next
}
