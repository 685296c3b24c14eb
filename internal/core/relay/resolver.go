// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package relay

import "github.com/anybox/anyrepo/internal/remote"

// Resolver selects which configured remotes an event should be
// replayed against. The remote list is an immutable snapshot taken at
// construction time.
type Resolver struct {
	remotes []remote.Client
}

// NewResolver creates a resolver over the configured remotes.
func NewResolver(remotes []remote.Client) *Resolver {
	return &Resolver{remotes: remotes}
}

// Candidates returns the remotes to reconcile, in configuration order,
// excluding every remote whose host equals the event's source host.
// Excluded remotes do not appear in the response at all.
func (r *Resolver) Candidates(sourceHost string) []remote.Client {
	candidates := make([]remote.Client, 0, len(r.remotes))
	for _, rc := range r.remotes {
		if rc.Host() == sourceHost {
			continue
		}
		candidates = append(candidates, rc)
	}
	return candidates
}
