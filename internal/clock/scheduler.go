// Package clock provides a virtual timer scheduler for fixed-period simulation.
// Every timer is multiplexed onto the goroutine that calls Advance, so callbacks
// never overlap and always see the state left by the previous callback.
package clock

import (
	"container/heap"
	"time"
)

// Scheduler owns a virtual clock and the timers armed on it.
// It is not safe for concurrent use; hosts with several goroutines must
// funnel calls through a single owner (see internal/runner).
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// New creates a scheduler with its clock at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Every arms a periodic timer. The first firing happens one period from now.
// Panics if period is not positive.
func (s *Scheduler) Every(period time.Duration, fn func()) *Timer {
	if period <= 0 {
		panic("clock: non-positive timer period")
	}
	return s.arm(period, period, fn)
}

// After arms a one-shot timer that fires once delay has elapsed.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	return s.arm(delay, 0, fn)
}

func (s *Scheduler) arm(delay, period time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		sched:  s,
		due:    s.now + delay,
		period: period,
		seq:    s.seq,
		fn:     fn,
		index:  -1,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that falls due
// on the way in (due, arming order) order. Timers armed by a callback fire
// in the same call if they fall due before the new time. Returns the number
// of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		return 0
	}
	target := s.now + d
	fired := 0

	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = t.due

		// Requeue before the callback so the callback can stop its own timer.
		if t.period > 0 {
			t.due += t.period
			heap.Push(&s.queue, t)
		}

		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// StopAll disarms every timer.
func (s *Scheduler) StopAll() {
	for len(s.queue) > 0 {
		heap.Pop(&s.queue)
	}
}

// Timer is a handle to an armed callback.
type Timer struct {
	sched  *Scheduler
	due    time.Duration
	period time.Duration
	seq    uint64
	fn     func()
	index  int // position in the queue, -1 when not armed
}

// Stop disarms the timer. It reports whether the timer was still armed.
// A stopped timer never fires again, even if it was due in the Advance
// call that is currently running.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.sched.queue, t.index)
	return true
}

// Active reports whether the timer is still armed.
func (t *Timer) Active() bool {
	return t != nil && t.index >= 0
}

// Due returns the virtual time of the next firing.
func (t *Timer) Due() time.Duration {
	return t.due
}

// timerQueue is a min-heap ordered by due time, then by arming order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
