package fetcher

import (
	"context"
	"sync"
)

type memoKey struct{}

// memo remembers fetch outcomes, errors included, for one request.
type memo struct {
	mu      sync.Mutex
	entries map[string]*memoEntry
}

type memoEntry struct {
	once   sync.Once
	bundle *Bundle
	err    error
}

// WithRequestMemo returns a context under which repeated fetches of the same
// path resolve once. Install it once per inbound request and never share the
// context across requests.
func WithRequestMemo(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if memoFromContext(ctx) != nil {
		return ctx
	}
	return context.WithValue(ctx, memoKey{}, &memo{entries: make(map[string]*memoEntry)})
}

func memoFromContext(ctx context.Context) *memo {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(memoKey{}).(*memo)
	return m
}

func (m *memo) do(path string, load func() (*Bundle, error)) (*Bundle, error) {
	m.mu.Lock()
	entry, ok := m.entries[path]
	if !ok {
		entry = &memoEntry{}
		m.entries[path] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.bundle, entry.err = load()
	})
	return entry.bundle, entry.err
}
