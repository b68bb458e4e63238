package core

import (
	"time"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/schema"
)

// trackAnalysis records the run and its per-author aggregates in the
// analysis store. Tracking is best effort: a broken or disabled store must
// never fail an otherwise successful analysis, so every error is a warning.
func trackAnalysis(cfg *contract.Config, mgr contract.CacheManager, startTime time.Time, analysis *schema.BranchAnalysis) {
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}

	configParams := map[string]any{
		"repo":      cfg.RepoSlug(),
		"branch":    analysis.Branch,
		"max_pages": cfg.MaxPages,
		"per_page":  cfg.PerPage,
		"details":   cfg.Details,
	}

	analysisID, err := store.BeginAnalysis(startTime, configParams)
	if err != nil {
		contract.LogWarn("could not begin analysis tracking", err)
		return
	}

	for _, key := range analysis.AuthorKeys {
		if err := store.RecordAuthorStats(analysisID, analysis.Authors[key]); err != nil {
			contract.LogWarn("could not record author stats", err)
		}
	}

	if err := store.EndAnalysis(analysisID, time.Now(), len(analysis.AuthorKeys)); err != nil {
		contract.LogWarn("could not finalize analysis tracking", err)
	}
}
