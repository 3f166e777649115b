package usecase

import (
	"context"
	"sync"
)

// Page holds the loading/error state every page view-model shares and guards
// it against results that land after the page was torn down.
//
// A Page is owned by one request. Close may be called from another goroutine
// (e.g. when the client disconnects); after Close, late results are dropped.
type Page struct {
	mu      sync.Mutex
	closed  bool
	loading bool
	loaded  bool
	err     error
}

// Close marks the page as torn down. It is safe to call more than once.
func (p *Page) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Page) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Loaded reports whether the main fetch completed successfully.
func (p *Page) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Err is the read failure shown in place of the page body, if any.
func (p *Page) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Page) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPageClosed
	}
	p.err = nil
	p.loading = true
	return nil
}

func (p *Page) finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.loading = false
	p.err = err
	p.loaded = err == nil
}

// Await runs fetch and passes its result to apply while holding the page
// lock. If the page was closed before the result arrived, apply is skipped and
// ErrPageClosed is returned.
func Await[T any](ctx context.Context, p *Page, fetch func(context.Context) (T, error), apply func(T)) error {
	v, err := fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPageClosed
	}
	if err != nil {
		return err
	}
	apply(v)
	return nil
}
