package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a fetch whose result arrived after a newer
// fetch for the same view had started.
var ErrSuperseded = errors.New("request superseded by a newer one")

// LatestGuard keeps only the most recent request per key alive. Starting a
// request cancels the one before it, and a finished request can check
// whether it is still current before its result is applied.
type LatestGuard struct {
	mu      sync.Mutex
	seq     map[string]uint64
	cancels map[string]context.CancelFunc
}

// NewLatestGuard creates an empty guard.
func NewLatestGuard() *LatestGuard {
	return &LatestGuard{
		seq:     make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Begin starts a request for key. The returned context is cancelled when a
// newer request for the same key begins. done reports ErrSuperseded when the
// request is no longer the latest and must be called exactly once.
func (g *LatestGuard) Begin(ctx context.Context, key string) (context.Context, func() error) {
	reqCtx, cancel := context.WithCancel(ctx)

	g.mu.Lock()
	if prev, ok := g.cancels[key]; ok {
		prev()
	}
	g.seq[key]++
	mine := g.seq[key]
	g.cancels[key] = cancel
	g.mu.Unlock()

	done := func() error {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.seq[key] != mine {
			cancel()
			return ErrSuperseded
		}
		delete(g.cancels, key)
		cancel()
		return nil
	}
	return reqCtx, done
}
