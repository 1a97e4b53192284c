package compute

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/cakeflow/cake/pkg/config"
	"github.com/cakeflow/cake/pkg/dst"
	"github.com/cakeflow/cake/pkg/logging"
	"github.com/cakeflow/cake/pkg/observer"
	"github.com/cakeflow/cake/pkg/value"
)

// Evaluator computes sinks of a dst.Graph, memoizing every intermediate
// producer port it visits. It holds no graph-mutating state of its own;
// structural changes to the graph during an in-flight Compute call are the
// host's responsibility to serialize (see SPEC_FULL.md §5).
type Evaluator struct {
	graph    *dst.Graph
	sf       singleflight.Group
	cfg      *config.Config
	logger   *logging.Logger
	observer *observer.Manager
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithConfig installs engine configuration (concurrency cap, compute
// timeout, single-flight toggle).
func WithConfig(cfg *config.Config) Option {
	return func(e *Evaluator) { e.cfg = cfg }
}

// WithLogger installs a structured logger; a per-call child logger carrying
// compute_id, sink_id and output (producer port) fields is derived from it
// for each Compute invocation.
func WithLogger(l *logging.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithObserver installs an observer manager notified around compute and
// transform invocations.
func WithObserver(m *observer.Manager) Option {
	return func(e *Evaluator) { e.observer = m }
}

// New creates an Evaluator over g.
func New(g *dst.Graph, opts ...Option) *Evaluator {
	e := &Evaluator{graph: g}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute resolves sink id to its producer port and returns its value,
// computing and caching any uncached transform in its dependency cone.
// Fails with ErrMissingOutputID if id is unknown or detached.
func (e *Evaluator) Compute(ctx context.Context, id dst.OutputId) (value.Value, error) {
	producer, ok := e.graph.ResolveOutput(id)
	if !ok {
		return value.Value{}, ErrMissingOutputID
	}

	if e.cfg != nil && e.cfg.ComputeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.ComputeTimeout)
		defer cancel()
	}

	computeID := uuid.NewString()
	log := e.logger
	if log != nil {
		log = log.WithField("compute_id", computeID).WithField("sink_id", int(id)).WithField("output", fmt.Sprintf("%+v", producer))
		log.Debug("compute: starting")
	}
	if e.observer != nil {
		e.observer.Notify(ctx, observer.Event{Type: observer.EventComputeStart, SinkID: int(id)})
	}

	start := time.Now()
	v, err := e.resolveOutput(ctx, producer)
	elapsed := time.Since(start)

	if e.observer != nil {
		e.observer.Notify(ctx, observer.Event{Type: observer.EventComputeEnd, SinkID: int(id), Elapsed: elapsed, Err: err})
	}
	if log != nil {
		if err != nil {
			log.WithError(err).Warn("compute: failed")
		} else {
			log.Debug("compute: finished")
		}
	}
	return v, err
}

// resolveOutput returns the memoized value at o, computing it (and its
// dependencies, in parallel) if not already cached. Concurrent calls for
// the same Output are deduplicated via a single-flight group layered on
// top of the cache, unless explicitly disabled in config.
func (e *Evaluator) resolveOutput(ctx context.Context, o dst.Output) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return value.Value{}, err
	}

	slot := e.graph.CacheSlot(o)
	if slot == nil {
		return value.Value{}, computeErrorf("transform %d does not exist", o.Transform)
	}
	if v, ok := slot.Get(); ok {
		if e.observer != nil {
			e.observer.Notify(ctx, observer.Event{Type: observer.EventCacheHit, TransformIdx: int(o.Transform)})
		}
		return v, nil
	}
	if e.observer != nil {
		e.observer.Notify(ctx, observer.Event{Type: observer.EventCacheMiss, TransformIdx: int(o.Transform)})
	}

	if e.cfg != nil && !e.cfg.SingleFlightEnabled {
		return e.computeFresh(ctx, o, slot)
	}

	key := fmt.Sprintf("%d:%d", o.Transform, o.Output)
	resultI, err, _ := e.sf.Do(key, func() (interface{}, error) {
		if v, ok := slot.Get(); ok {
			return v, nil
		}
		return e.computeFresh(ctx, o, slot)
	})
	if err != nil {
		return value.Value{}, err
	}
	return resultI.(value.Value), nil
}

// computeFresh actually invokes the transform's algorithm at o, after
// resolving every declared input in parallel. Inner algorithm errors are
// never cached; only a genuine success is stored into slot.
func (e *Evaluator) computeFresh(ctx context.Context, o dst.Output, slot interface {
	Get() (value.Value, bool)
	Set(value.Value)
}) (value.Value, error) {
	desc, ok := e.graph.Descriptor(o.Transform)
	if !ok {
		return value.Value{}, computeErrorf("transform %d does not exist", o.Transform)
	}
	if !desc.OutputExists(o.Output) {
		return value.Value{}, computeErrorf("output %d is not declared on transform %d", o.Output, o.Transform)
	}

	n := len(desc.Inputs)
	inputs := make([]value.Value, n)
	errs := make([]error, n)

	g, gctx := errgroup.WithContext(ctx)
	if e.cfg != nil && e.cfg.MaxComputeConcurrency > 0 {
		g.SetLimit(e.cfg.MaxComputeConcurrency)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			producer, hasEdge, def, hasDefault, exists := e.graph.InputSource(o.Transform, i)
			if !exists {
				errs[i] = computeErrorf("input %d is not declared on transform %d", i, o.Transform)
				return nil
			}
			if hasEdge {
				v, err := e.resolveOutput(gctx, producer)
				if err != nil {
					errs[i] = err
					return nil
				}
				inputs[i] = v
				return nil
			}
			if hasDefault {
				inputs[i] = def
				return nil
			}
			errs[i] = computeErrorf("missing dependency for input %d of transform %d", i, o.Transform)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return value.Value{}, err
		}
	}

	caller := desc.Start()
	for _, v := range inputs {
		if err := caller.Feed(v); err != nil {
			return value.Value{}, computeErrorf("feeding transform %d: %v", o.Transform, err)
		}
	}

	if e.observer != nil {
		e.observer.Notify(ctx, observer.Event{Type: observer.EventTransformStart, TransformIdx: int(o.Transform), TransformName: desc.Name})
	}
	start := time.Now()
	results, err := caller.Call()
	elapsed := time.Since(start)
	if e.observer != nil {
		e.observer.Notify(ctx, observer.Event{Type: observer.EventTransformEnd, TransformIdx: int(o.Transform), TransformName: desc.Name, Elapsed: elapsed, Err: err})
	}
	if err != nil {
		return value.Value{}, computeErrorf("calling transform %d: %v", o.Transform, err)
	}
	if o.Output >= len(results) {
		return value.Value{}, computeErrorf("transform %d produced fewer outputs than declared", o.Transform)
	}
	if results[o.Output].Err != nil {
		return value.Value{}, &InnerComputeError{Err: results[o.Output].Err}
	}

	v := results[o.Output].Value
	slot.Set(v)
	return v, nil
}
