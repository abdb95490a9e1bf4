package taskgraph

import (
	"sync"

	"github.com/joeycumines/go-taskgraph/internal/tglog"
)

// readyItem is a single unit of work sitting in the Pool's FIFO ready
// queue: either a task borrowed from an active list, or a one-shot task
// submitted directly via Execute/Invoke.
type readyItem struct {
	task *taskEntry
}

// activeList is the Pool's bookkeeping record for one TaskList between
// Push and retirement.
type activeList struct {
	list *TaskList
	fut  *Future[*TaskList]
}

// Pool owns a fixed set of worker goroutines, a FIFO ready queue, and a
// registry of currently-executing task lists. It drains ready items from
// active lists into the queue whenever workers go idle or new work
// arrives, wakes workers accordingly, and retires lists once fully
// consumed.
//
// A Pool must be shut down with [Pool.Close]; closing with outstanding
// submissions is a fatal contract violation (spec.md §4.6, §7) and is
// reported via [*DestroyedWhileActiveError] rather than silently leaking
// workers.
type Pool struct {
	mu        sync.Mutex
	workerCV  *sync.Cond
	waitCV    *sync.Cond
	log       tglog.Logger
	workers   int
	running   bool
	queue     []readyItem
	active    []*activeList
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewPool constructs and starts a Pool with [defaultWorkerCount] workers,
// or as overridden by [WithWorkers]. See [WithLogger] to receive
// diagnostics for dropped fire-and-forget task errors.
func NewPool(opts ...PoolOption) *Pool {
	cfg := resolvePoolConfig(opts)
	p := &Pool{
		log:     cfg.logger,
		workers: cfg.workers,
		running: true,
	}
	p.workerCV = sync.NewCond(&p.mu)
	p.waitCV = sync.NewCond(&p.mu)
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.workerLoop()
	}
	return p
}

// workerLoop is the body run by every worker goroutine. It sleeps on
// workerCV until either shutdown is requested or the ready queue is
// non-empty, attempts at most one drain per wake if the queue came up
// empty (waking up to min(emitted, workers) workers for whatever that
// drain emitted), pops one item FIFO, releases the lock, and executes it.
//
// The drain is attempted at most once per wake — never retried in a tight
// loop — because drainLocked's return value cannot change without some
// external event (a task completing, a fence signaling, a new list being
// pushed) re-waking a worker; spinning on an unproductive drain would burn
// a CPU core against lists blocked on a fence or barrier that nothing in
// this wake cycle can satisfy.
func (p *Pool) workerLoop() {
	defer p.wg.Done()
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		for p.running && len(p.queue) == 0 {
			if n := p.drainLocked(); n > 0 {
				p.notify(min(n, p.workers))
			} else if len(p.queue) == 0 {
				if len(p.active) == 0 {
					p.waitCV.Broadcast()
				}
				p.workerCV.Wait()
			}
		}
		if len(p.queue) == 0 {
			return
		}
		item := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()
		item.task.execute(p.log)
		p.mu.Lock()
	}
}

// drainLocked advances every active list by one next() call, appending
// emitted tasks to the ready queue and retiring any list that reports
// (true, 0). Must be called with mu held. Returns the number of tasks
// appended.
func (p *Pool) drainLocked() int {
	emitted := 0
	remaining := p.active[:0]
	for _, al := range p.active {
		var out []*taskEntry
		atEnd, n := al.list.next(&out)
		emitted += n
		for _, te := range out {
			p.queue = append(p.queue, readyItem{task: te})
		}
		if atEnd && n == 0 {
			al.fut.set(al.list, nil)
			continue
		}
		remaining = append(remaining, al)
	}
	p.active = remaining
	return emitted
}

// notify wakes up to min(n, workers) workers. Must be called with mu held,
// or immediately after releasing it is unsafe — callers hold the lock
// across the call.
func (p *Pool) notify(n int) {
	if n <= 0 {
		return
	}
	if n >= p.workers {
		p.workerCV.Broadcast()
		return
	}
	for i := 0; i < n; i++ {
		p.workerCV.Signal()
	}
}

// wakeWorkers is the wake path bound into a TaskList's fences on Push
// (spec.md §9 "process-wide wake paths"): it is safe to call from any
// goroutine, including from inside Fence.Signal, and does not require the
// caller to hold the Pool's mutex.
func (p *Pool) wakeWorkers() {
	p.mu.Lock()
	p.workerCV.Broadcast()
	p.mu.Unlock()
}

// Push resets list (seeding every checkpoint's counter and binding every
// fence's wake path to this Pool) and registers it as active, returning a
// future that resolves to the list itself once fully consumed. Push
// drains immediately so independent, unblocked work starts without
// waiting for a worker to wake spontaneously.
func (p *Pool) Push(list *TaskList) (*Future[*TaskList], error) {
	fut := newFuture[*TaskList]()
	list.reset(p.wakeWorkers)

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil, &SubmissionClosedError{}
	}
	p.active = append(p.active, &activeList{list: list, fut: fut})
	emitted := p.drainLocked()
	p.notify(min(emitted, p.workers))
	p.mu.Unlock()
	return fut, nil
}

// Execute appends a one-shot fire-and-forget task directly to the ready
// queue, bypassing the active-list registry entirely.
func (p *Pool) Execute(fn func() error) error {
	te := &taskEntry{
		category: "execute",
		invoke:   func() (any, error) { return nil, fn() },
	}
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return &SubmissionClosedError{}
	}
	p.queue = append(p.queue, readyItem{task: te})
	p.notify(1)
	p.mu.Unlock()
	return nil
}

// PoolInvoke appends a one-shot value-returning task directly to the
// ready queue, returning a [*Future] for fn's result.
//
// Like [Invoke], PoolInvoke is a free function rather than a Pool method,
// since Go methods cannot introduce their own type parameters.
func PoolInvoke[T any](p *Pool, fn func() (T, error)) (*Future[T], error) {
	fut := newFuture[T]()
	te := &taskEntry{
		category: "invoke",
		invoke: func() (any, error) {
			v, err := fn()
			return v, err
		},
		deliver: func(val any, err error) {
			v, _ := val.(T)
			fut.set(v, err)
		},
	}
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil, &SubmissionClosedError{}
	}
	p.queue = append(p.queue, readyItem{task: te})
	p.notify(1)
	p.mu.Unlock()
	return fut, nil
}

// WaitIdle blocks until the ready queue and active-list registry are both
// empty.
func (p *Pool) WaitIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) != 0 || len(p.active) != 0 {
		p.waitCV.Wait()
	}
}

// Close shuts the pool down: it requires the pool to already be idle (see
// [Pool.WaitIdle]), wakes every worker so they observe running == false,
// and joins them. Closing a pool with outstanding submissions returns
// [*DestroyedWhileActiveError] instead of silently abandoning work or
// leaking goroutines (spec.md §4.6, §7); callers implementing the
// contract call WaitIdle first.
func (p *Pool) Close() error {
	var active, ready int
	p.mu.Lock()
	active, ready = len(p.active), len(p.queue)
	if active != 0 || ready != 0 {
		p.mu.Unlock()
		return &DestroyedWhileActiveError{ActiveLists: active, ReadyItems: ready}
	}
	p.running = false
	p.workerCV.Broadcast()
	p.mu.Unlock()

	p.closeOnce.Do(p.wg.Wait)
	return nil
}
