package boids

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Scheduler decides how the independent per-agent computations of one tick
// are executed. Every implementation must call fn exactly once per index.
type Scheduler interface {
	// Map calls fn(i) for every i in [0, n) and returns once all calls are done.
	Map(n int, fn func(i int))
	// NewScope opens a scope tasks can be spawned into, see MaybeScope.
	NewScope() Scope
	String() string
}

// Scope collects tasks spawned while it is open.
type Scope interface {
	Spawn(task func())
	Wait()
}

// MaybeScope runs op inside a scope of s and waits for every task op spawned
// before returning op's result. With a Sequential scheduler tasks run inline
// as they are spawned, so op never needs to know which scheduler it got.
func MaybeScope[R any](s Scheduler, op func(Scope) R) R {
	scope := s.NewScope()
	r := op(scope)
	scope.Wait()
	return r
}

// NewScheduler returns Parallel{Workers: workers} when parallel is set and
// Sequential otherwise.
func NewScheduler(parallel bool, workers int) Scheduler {
	if parallel {
		return Parallel{Workers: workers}
	}
	return Sequential{}
}

// Sequential runs every task on the calling goroutine, in index order.
type Sequential struct{}

func (Sequential) Map(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

func (Sequential) NewScope() Scope { return inlineScope{} }

func (Sequential) String() string { return "sequential" }

type inlineScope struct{}

func (inlineScope) Spawn(task func()) { task() }
func (inlineScope) Wait()             {}

// Parallel is a fork-join scheduler: indices are split into contiguous
// chunks, one per worker, and the call returns when all chunks are done.
// Workers <= 0 means runtime.GOMAXPROCS(0).
type Parallel struct {
	Workers int
}

func (p Parallel) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (p Parallel) Map(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := min(p.workers(), n)
	chunk := (n + workers - 1) / workers

	MaybeScope(p, func(s Scope) struct{} {
		for start := 0; start < n; start += chunk {
			end := min(start+chunk, n)
			s.Spawn(func() {
				for i := start; i < end; i++ {
					fn(i)
				}
			})
		}
		return struct{}{}
	})
}

func (p Parallel) NewScope() Scope {
	g := &errgroup.Group{}
	g.SetLimit(p.workers())
	return &groupScope{g: g}
}

func (p Parallel) String() string { return fmt.Sprintf("parallel(%d)", p.workers()) }

type groupScope struct {
	g *errgroup.Group
}

func (s *groupScope) Spawn(task func()) {
	s.g.Go(func() error {
		task()
		return nil
	})
}

func (s *groupScope) Wait() {
	// tasks never return an error
	_ = s.g.Wait()
}
