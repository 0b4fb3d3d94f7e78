// Package content loads the site's resource families (ads, regions,
// activities) from the content backend.
//
// A Provider fetches one full table snapshot per mount and exposes
// {items, loading}. Providers are created per page render and handed to the
// page composition explicitly; nothing is cached across renders.
package content

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"offsite/internal/lib/sl"
)

// ErrUnmounted is reported by Wait when the provider's scope ended before
// the fetch settled. The late response is discarded.
var ErrUnmounted = errors.New("provider unmounted before load settled")

// State is the provider lifecycle.
type State int

const (
	StateNotLoaded State = iota
	StateLoading
	StateLoaded
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not_loaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnmounted:
		return "unmounted"
	}
	return "unknown"
}

// Status tells "no data" apart from "fetch failed".
type Status int

const (
	StatusPending Status = iota
	StatusLoaded
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLoaded:
		return "loaded"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is a settled load. Items is never nil.
type Result[T any] struct {
	Items  []T
	Status Status
	Err    error
}

// Snapshot is what page compositions read.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Status  Status
}

// Source fetches a full snapshot of one resource family.
type Source[T any] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) ([]T, error)

func (f SourceFunc[T]) Fetch(ctx context.Context) ([]T, error) { return f(ctx) }

// Provider loads one resource family once per mount.
type Provider[T any] struct {
	name string
	src  Source[T]
	log  *slog.Logger

	mu     sync.Mutex
	state  State
	result Result[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProvider creates an unmounted provider. log may be nil.
func NewProvider[T any](name string, src Source[T], log *slog.Logger) *Provider[T] {
	if log == nil {
		log = sl.Discard()
	}
	return &Provider[T]{
		name:   name,
		src:    src,
		log:    log.With(slog.String("provider", name)),
		result: Result[T]{Items: []T{}, Status: StatusPending},
		done:   make(chan struct{}),
	}
}

// Name is the resource family name.
func (p *Provider[T]) Name() string { return p.name }

// Mount starts the single fetch for this provider. The fetch is bound to ctx;
// cancelling ctx has the same effect as Unmount. Repeat calls do nothing.
func (p *Provider[T]) Mount(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateNotLoaded {
		return
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state = StateLoading

	go p.load(fetchCtx)
}

func (p *Provider[T]) load(ctx context.Context) {
	start := time.Now()
	items, err := p.src.Fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer close(p.done)
	defer p.cancel()

	if ctx.Err() != nil {
		p.state = StateUnmounted
		p.result = Result[T]{Items: []T{}, Status: StatusPending, Err: ErrUnmounted}
		p.log.Debug("discarding response for unmounted provider", slog.Duration("elapsed", time.Since(start)))
		return
	}

	switch {
	case err != nil:
		p.log.Error("failed to load content", sl.Err(err), slog.Duration("elapsed", time.Since(start)))
		p.result = Result[T]{Items: []T{}, Status: StatusFailed, Err: err}
	case len(items) == 0:
		p.result = Result[T]{Items: []T{}, Status: StatusEmpty}
	default:
		p.result = Result[T]{Items: items, Status: StatusLoaded}
	}
	p.state = StateLoaded

	p.log.Debug("content loaded",
		slog.Int("items", len(p.result.Items)),
		slog.String("status", p.result.Status.String()),
		slog.Duration("elapsed", time.Since(start)),
	)
}

// Unmount ends the provider's scope. An in-flight fetch is cancelled and its
// response will not be committed.
func (p *Provider[T]) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateNotLoaded:
		p.state = StateUnmounted
		p.result.Err = ErrUnmounted
		close(p.done)
	case StateLoading:
		p.cancel()
	}
}

// Wait blocks until the load settles or ctx is done.
func (p *Provider[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		return Result[T]{Items: []T{}, Status: StatusPending}, ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateUnmounted {
		return p.result, ErrUnmounted
	}
	return p.result, nil
}

// Await is Wait without the result, for grouping providers in a Scope.
func (p *Provider[T]) Await(ctx context.Context) error {
	_, err := p.Wait(ctx)
	return err
}

// Snapshot reports current items and whether the load is still pending.
// A provider that has not settled yet reports Loading.
func (p *Provider[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Snapshot[T]{
		Items:   p.result.Items,
		Loading: p.state == StateNotLoaded || p.state == StateLoading,
		Status:  p.result.Status,
	}
}

// State reports the lifecycle state.
func (p *Provider[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
