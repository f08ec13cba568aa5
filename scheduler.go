// scheduler.go - discrete-event coupling between the Core and the outside world

package cpucore

import (
	"container/heap"
	"context"

	"golang.org/x/sync/errgroup"
)

// syncPoint is one scheduled device callback, ordered by time. Grounded on
// openMSX's Scheduler.cc (a min-heap of sync points consulted by
// executeUntilTarget).
type syncPoint struct {
	time uint64
	cb   func(time uint64)
}

// syncHeap implements container/heap.Interface, ordering by time.
type syncHeap []syncPoint

func (h syncHeap) Len() int            { return len(h) }
func (h syncHeap) Less(i, j int) bool   { return h[i].time < h[j].time }
func (h syncHeap) Swap(i, j int)        { h[i], h[j] = h[j], h[i] }
func (h *syncHeap) Push(x any)          { *h = append(*h, x.(syncPoint)) }
func (h *syncHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Scheduler drives a Core[P] to a target time, yielding to registered sync
// points in between - the single place this module's design note about
// "the source uses singletons for the scheduler/CPU/slot manager" is
// addressed: callers own one Scheduler per emulated machine, passed
// explicitly, instead of a process-wide singleton (spec §9).
type Scheduler[P Policy] struct {
	Core *Core[P]
	sp   syncHeap
}

// NewScheduler wraps core; the returned Scheduler owns the sync-point queue.
func NewScheduler[P Policy](core *Core[P]) *Scheduler[P] {
	s := &Scheduler[P]{Core: core}
	heap.Init(&s.sp)
	return s
}

// ScheduleSyncPoint registers cb to run when the CPU clock reaches time (or
// the next time Run/ExecuteUntil is called after that point).
func (s *Scheduler[P]) ScheduleSyncPoint(time uint64, cb func(time uint64)) {
	heap.Push(&s.sp, syncPoint{time: time, cb: cb})
}

func (s *Scheduler[P]) nextSyncTime(targetTime uint64) uint64 {
	if len(s.sp) == 0 {
		return targetTime
	}
	if s.sp[0].time < targetTime {
		return s.sp[0].time
	}
	return targetTime
}

func (s *Scheduler[P]) runDueSyncPoints(now uint64) {
	for len(s.sp) > 0 && s.sp[0].time <= now {
		due := heap.Pop(&s.sp).(syncPoint)
		due.cb(due.time)
	}
}

// ExecuteUntil runs the CPU up to targetTime, running any due sync points
// in between (spec §4.6): "execute(targetTime) runs instructions until the
// CPU clock >= targetTime OR an asynchronous exit was requested OR a
// device scheduled event at a time <= current CPU time."
func (s *Scheduler[P]) ExecuteUntil(targetTime uint64) {
	for {
		boundary := s.nextSyncTime(targetTime)
		exited := s.Core.Execute(boundary)
		s.runDueSyncPoints(s.Core.Clock.Time())
		if exited || s.Core.Clock.Time() >= targetTime {
			return
		}
	}
}

// Run drives ExecuteUntil repeatedly in cycleBudget-sized steps inside its
// own goroutine until ctx is cancelled, matching the teacher's
// goroutine-plus-external-stop-function worker lifecycle
// (coproc_worker_z80.go/coprocessor_manager.go), generalized onto
// errgroup.Group so the caller can Wait() for a clean shutdown instead of
// polling a done channel.
func (s *Scheduler[P]) Run(ctx context.Context, cycleBudget uint64) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				s.Core.ExitCPULoopAsync()
				return ctx.Err()
			default:
				s.ExecuteUntil(s.Core.Clock.Time() + cycleBudget)
			}
		}
	})
	return g.Wait()
}

// Execute runs the CPU until its clock reaches targetTime or an exit was
// requested, servicing the interrupt/HALT state machine at every
// instruction boundary via Step. Returns true if it stopped because of a
// sync or async exit request rather than reaching targetTime.
func (c *Core[P]) Execute(targetTime uint64) bool {
	for c.Clock.Time() < targetTime {
		if c.exitSync.Load() {
			c.exitSync.Store(false)
			return true
		}
		if c.exitAsync.Load() {
			c.exitAsync.Store(false)
			return true
		}
		c.Step()
	}
	return false
}

// ExitCPULoopSync forces an immediate instruction-boundary return from
// Execute; callable only from the thread driving this Core.
func (c *Core[P]) ExitCPULoopSync() { c.exitSync.Store(true) }

// ExitCPULoopAsync sets an atomic flag checked at instruction boundaries;
// the only Core method safe to call from another goroutine (spec §4.6).
func (c *Core[P]) ExitCPULoopAsync() { c.exitAsync.Store(true) }

// Warp advances the clock without executing any instruction; time must not
// be before the current instant.
func (c *Core[P]) Warp(time uint64) { c.Clock.AdvanceTo(time) }
