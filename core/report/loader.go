package report

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned by Loader.Load when a newer load was issued while
// this one's fetch was in flight. The caller must discard the result.
var ErrStale = errors.New("report load superseded by a newer request")

// FetchFunc fetches a report snapshot; it must honor ctx cancellation.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Loader serializes fetch-then-apply flows against rapid filter changes.
// Each Load gets a generation number; when it resolves, the result is
// applied only if no newer Load has started since, so a slow superseded
// response can never overwrite fresher state.
type Loader struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Load runs fetch and applies its result iff this is still the newest
// load. Starting a new Load cancels the context of any in-flight one.
func (l *Loader) Load(ctx context.Context, fetch FetchFunc, apply func(interface{})) error {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	snapshot, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return ErrStale
	}
	if err != nil {
		return err
	}
	apply(snapshot)
	return nil
}

// Generation returns the sequence number of the newest load issued.
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}
