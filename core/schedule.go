package core

import (
	"sort"
	"sync"
	"time"
)

// Clock supplies the current time. Swappable so interaction timing
// (hold duration, repeat intervals) can be driven manually in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

var (
	clockMu sync.RWMutex
	clock   Clock = realClock{}
)

// Now returns the current time from the active clock.
func Now() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock.Now()
}

// SetClock replaces the active clock and returns the previous one.
// Passing nil restores the real clock.
func SetClock(c Clock) Clock {
	clockMu.Lock()
	defer clockMu.Unlock()
	prev := clock
	if c == nil {
		c = realClock{}
	}
	clock = c
	return prev
}

// Scheduler runs a callback once after a delay. Implementations must
// deliver the callback on the UI goroutine.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) *ScheduledTask
}

// ScheduledTask is the handle to one pending callback.
type ScheduledTask struct {
	mu        sync.Mutex
	cancelled bool
	stop      func()
}

// Cancel prevents the callback from running. Safe to call repeatedly.
// Called from the UI goroutine, cancellation is immediate: the
// callback will not fire after Cancel returns.
func (t *ScheduledTask) Cancel() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.cancelled = true
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Cancelled reports whether Cancel has been called.
func (t *ScheduledTask) Cancelled() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// timerScheduler runs on time.AfterFunc and posts fires back to the UI
// goroutine, so callbacks interleave with event handling instead of
// racing it.
type timerScheduler struct {
	post func(func())
}

// NewTimerScheduler returns the real-time Scheduler. post must execute
// functions on the UI goroutine; the adapter's task queue does.
func NewTimerScheduler(post func(func())) Scheduler {
	return &timerScheduler{post: post}
}

func (s *timerScheduler) Schedule(d time.Duration, fn func()) *ScheduledTask {
	t := &ScheduledTask{}
	timer := time.AfterFunc(d, func() {
		s.post(func() {
			if t.Cancelled() {
				return
			}
			fn()
		})
	})
	t.mu.Lock()
	t.stop = func() { timer.Stop() }
	t.mu.Unlock()
	return t
}

// ManualClock is a settable Clock for tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts a clock at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward without firing any scheduler.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type manualTask struct {
	at   time.Time
	seq  int
	fn   func()
	task *ScheduledTask
}

// ManualScheduler queues callbacks and fires them from Advance, on the
// caller's goroutine, moving its clock to each deadline in order.
// Callbacks may schedule further tasks; a chain of repeats plays out
// within a single Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	clock *ManualClock
	tasks []*manualTask
	seq   int
}

// NewManualScheduler returns a scheduler with its own clock at start.
// Tests usually install the clock globally: core.SetClock(ms.Clock()).
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{clock: NewManualClock(start)}
}

// Clock returns the scheduler's clock.
func (s *ManualScheduler) Clock() *ManualClock { return s.clock }

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) *ScheduledTask {
	if d < 0 {
		d = 0
	}
	t := &ScheduledTask{}
	s.mu.Lock()
	s.seq++
	s.tasks = append(s.tasks, &manualTask{
		at:   s.clock.Now().Add(d),
		seq:  s.seq,
		fn:   fn,
		task: t,
	})
	s.mu.Unlock()
	return t
}

// Pending reports how many live callbacks are queued.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, mt := range s.tasks {
		if !mt.task.Cancelled() {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing every due callback in
// deadline order (insertion order on ties).
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for {
		next := s.popDue(target)
		if next == nil {
			break
		}
		s.clock.set(next.at)
		if !next.task.Cancelled() {
			next.fn()
		}
	}
	s.clock.set(target)
}

// popDue removes and returns the earliest task due at or before
// target, nil when none remain.
func (s *ManualScheduler) popDue(target time.Time) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].at.Equal(s.tasks[j].at) {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].at.Before(s.tasks[j].at)
	})
	for i, mt := range s.tasks {
		if mt.at.After(target) {
			continue
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		return mt
	}
	return nil
}
