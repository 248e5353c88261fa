package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// Decision is the routing outcome of a gate evaluation.
type Decision int

const (
	// Allow lets the navigation proceed to the requested surface.
	Allow Decision = iota
	// RedirectHome sends the user back to the home surface (reaching the
	// blocked page while actually allowed).
	RedirectHome
	// RedirectBlocked sends the user to the blocked surface.
	RedirectBlocked
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectHome:
		return "redirect_home"
	case RedirectBlocked:
		return "redirect_blocked"
	default:
		return "unknown"
	}
}

// SurfaceBlocked names the blocked surface, which the gate treats specially:
// it is evaluated against the cache only and never triggers a network check.
const SurfaceBlocked = "blocked"

// Gate decides, for every navigation, whether the client's network origin is
// allowed. Verdicts are cached with a TTL; a cached dev-mode verdict bypasses
// the TTL entirely and allows indefinitely (deliberately kept from the
// observed behavior of the production router guard, where only the plain
// allowed flag is revalidated). Any failure of the origin check fails closed.
// Evaluate never returns an error.
type Gate struct {
	cache   *VerdictCache
	checker driven.OriginChecker
	devEnv  bool
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewGate creates a Gate. devEnv disables all gating (local development
// environment). now is the clock used for TTL arithmetic; tests inject a fake.
func NewGate(cache *VerdictCache, checker driven.OriginChecker, devEnv bool, ttl time.Duration, now func() time.Time, logger *slog.Logger) *Gate {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		cache:   cache,
		checker: checker,
		devEnv:  devEnv,
		ttl:     ttl,
		now:     now,
		logger:  logger,
	}
}

// Evaluate runs the gate state machine for a navigation to the named surface.
func (g *Gate) Evaluate(ctx context.Context, surface string) Decision {
	// Development environment short-circuits before any cache or network work.
	if g.devEnv {
		return Allow
	}

	if surface == SurfaceBlocked {
		// Cache only; a user who is actually allowed does not belong on the
		// blocked page.
		if v, ok := g.cache.Get(ctx); ok && (v.Allowed || v.DevMode) {
			return RedirectHome
		}
		return Allow
	}

	if v, ok := g.cache.Get(ctx); ok {
		if v.DevMode {
			return Allow
		}
		if v.Allowed && v.Age(g.now()) < g.ttl {
			return Allow
		}
	}

	verdict, err := g.checker.CheckIP(ctx)
	if err != nil {
		// Fail closed; the stale cache entry (if any) is left in place.
		g.logger.Warn("origin check failed", "surface", surface, "error", err)
		return RedirectBlocked
	}

	verdict.ObservedAt = g.now()
	g.cache.Put(ctx, verdict)

	if !verdict.Allowed && !verdict.DevMode {
		g.logger.Info("origin denied", "surface", surface)
		return RedirectBlocked
	}
	return Allow
}
