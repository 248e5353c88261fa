// Package application contains use-case orchestration services.
package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SebasHerPorras/produs-panel/internal/domain/model"
	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// verdictKey is the storage key of the single cached origin-check verdict,
// matching the original web client's session storage entry.
const verdictKey = "ip_check_cache"

// verdictEntry is the cached JSON wire form of a verdict.
type verdictEntry struct {
	Allowed bool  `json:"allowed"`
	DevMode bool  `json:"dev_mode"`
	TS      int64 `json:"ts"` // epoch millis
}

// VerdictCache holds the single session-scoped origin-check verdict. It never
// returns an error: an entry that is missing, unreadable, or malformed is a
// cache miss, and a failed write is silently dropped (the next navigation
// simply re-checks).
type VerdictCache struct {
	session driven.KeyValue
}

// NewVerdictCache creates a VerdictCache on the given session-scoped store.
func NewVerdictCache(session driven.KeyValue) *VerdictCache {
	return &VerdictCache{session: session}
}

// Get returns the cached verdict, with ok=false on a miss.
func (c *VerdictCache) Get(ctx context.Context) (model.Verdict, bool) {
	raw, ok, err := c.session.Get(ctx, verdictKey)
	if err != nil || !ok {
		return model.Verdict{}, false
	}

	var entry verdictEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return model.Verdict{}, false
	}

	return model.Verdict{
		Allowed:    entry.Allowed,
		DevMode:    entry.DevMode,
		ObservedAt: time.UnixMilli(entry.TS),
	}, true
}

// Put overwrites the cached verdict. The underlying store's Set is atomic, so
// a concurrent reader sees either the old or the new entry, never a torn one.
func (c *VerdictCache) Put(ctx context.Context, v model.Verdict) {
	entry := verdictEntry{
		Allowed: v.Allowed,
		DevMode: v.DevMode,
		TS:      v.ObservedAt.UnixMilli(),
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_ = c.session.Set(ctx, verdictKey, string(encoded))
}

// Clear drops the cached verdict. Used on logout so the next session starts
// from a fresh check.
func (c *VerdictCache) Clear(ctx context.Context) {
	_ = c.session.Delete(ctx, verdictKey)
}
