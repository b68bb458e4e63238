package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/schema"
)

// commitCacheVersion invalidates all existing entries whenever the cached
// payload shape changes. Bump on any change to cachedCommits.
const commitCacheVersion = 1

// commitCacheTTL bounds how long a commit sequence is served from cache even
// when the branch tip has not moved, so force-pushed history ages out.
const commitCacheTTL = 5 * time.Minute

// cachedCommits is the JSON payload stored per cache entry.
type cachedCommits struct {
	Records  []schema.CommitRecord `json:"records"`
	Complete bool                  `json:"complete"`
}

// commitCacheKey derives the cache key for a branch commit sequence. The tip
// SHA is part of the key, so any new commit on the branch produces a fresh
// key and stale entries simply stop being addressed.
func commitCacheKey(owner, repo, branch, tip string) string {
	raw := fmt.Sprintf("%s/%s@%s:%s:v%d", owner, repo, branch, tip, commitCacheVersion)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// fetchBranchCommitsCached returns the branch's commit sequence, consulting
// the cache keyed by the branch tip before calling the commit source. Cache
// failures degrade to a direct fetch; they never fail the analysis.
func fetchBranchCommitsCached(ctx context.Context, source contract.CommitSource, store contract.CacheStore, owner, repo, branch string) ([]schema.CommitRecord, bool, error) {
	if store == nil {
		return source.FetchBranchCommits(ctx, owner, repo, branch)
	}

	tip, err := source.GetBranchTip(ctx, owner, repo, branch)
	if err != nil {
		return nil, false, err
	}
	key := commitCacheKey(owner, repo, branch, tip)

	if payload, ok := cacheLookup(store, key); ok {
		return payload.Records, payload.Complete, nil
	}

	records, complete, err := source.FetchBranchCommits(ctx, owner, repo, branch)
	if err != nil {
		return nil, false, err
	}

	cacheStore(store, key, &cachedCommits{Records: records, Complete: complete})
	return records, complete, nil
}

// cacheLookup returns the decoded payload when a fresh, version-matched
// entry exists.
func cacheLookup(store contract.CacheStore, key string) (*cachedCommits, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false
	}
	if version != commitCacheVersion {
		return nil, false
	}
	if time.Since(time.Unix(ts, 0)) > commitCacheTTL {
		return nil, false
	}

	var payload cachedCommits
	if err := json.Unmarshal(data, &payload); err != nil {
		contract.LogWarn("discarding undecodable cache entry", err)
		return nil, false
	}
	return &payload, true
}

// cacheStore writes the payload, logging rather than failing on error.
func cacheStore(store contract.CacheStore, key string, payload *cachedCommits) {
	data, err := json.Marshal(payload)
	if err != nil {
		contract.LogWarn("could not encode commits for caching", err)
		return
	}
	if err := store.Set(key, data, commitCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("could not persist commits to cache", err)
	}
}
