package content

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Mountable is the non-generic face of a Provider.
type Mountable interface {
	Name() string
	Mount(ctx context.Context)
	Await(ctx context.Context) error
	Unmount()
}

// Scope is the set of providers mounted for one page render.
type Scope struct {
	members []Mountable
}

// Mount mounts every provider under ctx. Each fetch runs independently.
func Mount(ctx context.Context, members ...Mountable) *Scope {
	for _, m := range members {
		m.Mount(ctx)
	}
	return &Scope{members: members}
}

// Await waits for all members to settle or for ctx to end. A failed fetch is
// not an error here; only a missed deadline or unmount is.
func (s *Scope) Await(ctx context.Context) error {
	var g errgroup.Group
	for _, m := range s.members {
		m := m
		g.Go(func() error {
			return m.Await(ctx)
		})
	}
	return g.Wait()
}

// Close unmounts every member.
func (s *Scope) Close() {
	for _, m := range s.members {
		m.Unmount()
	}
}
