package lecture

import (
	"context"
	"log/slog"
	"sync"
)

// Guards collects release functions for temporary resources acquired
// while serving one request. Release runs them all in reverse order of
// acquisition, logging failures instead of returning them: cleanup
// must never mask the outcome of the request itself.
type Guards struct {
	mu       sync.Mutex
	released bool
	guards   []guard
}

type guard struct {
	name    string
	release func(context.Context) error
}

func NewGuards() *Guards {
	return &Guards{}
}

// Add registers a named release function. Later additions release first.
func (g *Guards) Add(name string, release func(context.Context) error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.guards = append(g.guards, guard{name: name, release: release})
}

// Release runs every registered guard once. Calling it again is a no-op.
func (g *Guards) Release(ctx context.Context) {
	g.mu.Lock()
	if g.released {
		g.mu.Unlock()
		return
	}
	g.released = true
	guards := g.guards
	g.guards = nil
	g.mu.Unlock()

	for i := len(guards) - 1; i >= 0; i-- {
		if err := guards[i].release(ctx); err != nil {
			slog.Warn("cleanup failed", "resource", guards[i].name, "error", err)
		}
	}
}
