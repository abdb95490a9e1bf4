package taskgraph

import (
	"runtime"

	"github.com/joeycumines/go-taskgraph/internal/tglog"
	"github.com/joeycumines/logiface"
)

// defaultWorkerCount returns the logical CPU count, floored at 8, per the
// contract's default for an unconfigured [*Pool].
func defaultWorkerCount() int {
	if n := runtime.NumCPU(); n > 8 {
		return n
	}
	return 8
}

type poolConfig struct {
	workers int
	logger  tglog.Logger
}

// PoolOption configures a [*Pool] constructed by [NewPool].
type PoolOption interface {
	applyPool(*poolConfig)
}

type poolOptionFunc func(*poolConfig)

func (f poolOptionFunc) applyPool(c *poolConfig) { f(c) }

// WithWorkers overrides the pool's fixed worker-thread count. n < 1 is
// clamped to 1, rather than producing a pool with no worker goroutines
// (which would leave every pushed task queued forever). Without this
// option, NewPool uses [defaultWorkerCount]: the logical CPU count,
// floored at 8.
func WithWorkers(n int) PoolOption {
	return poolOptionFunc(func(c *poolConfig) { c.workers = n })
}

// WithLogger configures the [*Pool]'s diagnostic logger, used exclusively
// to report fire-and-forget tasks whose callable returned an error (see
// TaskCallableFailedError). Without this option, diagnostics are dropped.
func WithLogger(l *logiface.Logger[logiface.Event]) PoolOption {
	return poolOptionFunc(func(c *poolConfig) { c.logger = tglog.FromLogiface(l) })
}

func resolvePoolConfig(opts []PoolOption) *poolConfig {
	c := &poolConfig{
		workers: defaultWorkerCount(),
		logger:  tglog.NoOp(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyPool(c)
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}

type builderConfig struct {
	dispatchThreads int
}

// BuilderOption configures a [*Builder] constructed by [NewBuilder].
type BuilderOption interface {
	applyBuilder(*builderConfig)
}

type builderOptionFunc func(*builderConfig)

func (f builderOptionFunc) applyBuilder(c *builderConfig) { f(c) }

// WithDispatchThreads overrides the shard count [Builder.Dispatch] splits a
// grid across, once the grid's size reaches that count. Without this
// option, NewBuilder uses [defaultWorkerCount].
func WithDispatchThreads(n int) BuilderOption {
	return builderOptionFunc(func(c *builderConfig) { c.dispatchThreads = n })
}

func resolveBuilderConfig(opts []BuilderOption) *builderConfig {
	c := &builderConfig{
		dispatchThreads: defaultWorkerCount(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyBuilder(c)
	}
	return c
}
