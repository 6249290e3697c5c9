package peers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/telefwd/telefwd/config"
)

// LoadRoutes converts the declared forwarding rules into the routing
// map: source chat ID to ordered destination chat IDs. Rules are
// processed in declaration order; disabled rules and rules with an empty
// source are skipped. When two rules resolve to the same source, the
// later rule's destinations replace the earlier one's — kept as declared
// behavior rather than merged, so a rule author can see it in the logs.
// Any resolution failure aborts the whole pass: a broken rule must be
// visible, not silently dropped.
func LoadRoutes(ctx context.Context, r Resolver, forwards []config.Forward) (map[int64][]int64, error) {
	routes := make(map[int64][]int64, len(forwards))
	for _, fwd := range forwards {
		if !fwd.Enabled {
			continue
		}
		if fwd.Source.Zero() {
			continue
		}
		src, err := r.Resolve(ctx, fwd.Source)
		if err != nil {
			return nil, fmt.Errorf("forward %q: source: %w", fwd.Name, err)
		}
		dests := make([]int64, 0, len(fwd.Dest))
		for _, dest := range fwd.Dest {
			id, err := r.Resolve(ctx, dest)
			if err != nil {
				return nil, fmt.Errorf("forward %q: dest %s: %w", fwd.Name, dest, err)
			}
			dests = append(dests, id)
		}
		if _, seen := routes[src]; seen {
			log.FromContext(ctx).Warnf("forward %q: source %d already mapped, replacing destinations", fwd.Name, src)
		}
		routes[src] = dests
	}
	log.FromContext(ctx).Debugf("routing map: %v", routes)
	return routes, nil
}

// LoadAdmins resolves the configured admin identifiers, preserving input
// order. Duplicates are kept as declared.
func LoadAdmins(ctx context.Context, r Resolver, admins []config.Peer) ([]int64, error) {
	resolved := make([]int64, 0, len(admins))
	for _, admin := range admins {
		id, err := r.Resolve(ctx, admin)
		if err != nil {
			return nil, fmt.Errorf("admin %s: %w", admin, err)
		}
		resolved = append(resolved, id)
	}
	log.FromContext(ctx).Debugf("loaded admins: %v", resolved)
	return resolved, nil
}
