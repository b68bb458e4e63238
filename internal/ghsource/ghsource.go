// Package ghsource fetches commit history from the GitHub REST API.
package ghsource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/schema"
	"github.com/google/go-github/v57/github"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Client wraps the GitHub API client with client-side rate limiting and the
// pagination caps from the validated config.
type Client struct {
	gh       *github.Client
	limiter  *rate.Limiter
	perPage  int
	maxPages int
	workers  int
}

var _ contract.CommitSource = (*Client)(nil) // Compile-time check

// NewClient creates a commit source backed by the GitHub REST API.
// An empty token falls back to unauthenticated access, which GitHub limits
// to 60 requests per hour.
func NewClient(cfg *contract.Config) *Client {
	gh := github.NewClient(nil)
	if cfg.Token != "" {
		gh = gh.WithAuthToken(cfg.Token)
	}
	return &Client{
		gh:       gh,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
		perPage:  cfg.PerPage,
		maxPages: cfg.MaxPages,
		workers:  cfg.Workers,
	}
}

// FetchRepository returns repository metadata, including the default branch.
func (c *Client) FetchRepository(ctx context.Context, owner, repo string) (*schema.RepositoryInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("repository %s/%s not found or not accessible", owner, repo)
		}
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", owner, repo, err)
	}
	return mapRepository(owner, repo, repository), nil
}

// ListBranches returns the repository's branch names, newest pages first as
// returned by the API, capped at the configured page limit.
func (c *Client) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	var names []string
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}

	for page := 1; page <= c.maxPages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		opts.Page = page
		branches, resp, err := c.gh.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list branches for %s/%s: %w", owner, repo, err)
		}
		for _, b := range branches {
			names = append(names, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
	}
	return names, nil
}

// GetBranchTip returns the SHA of the branch's newest commit. This is a
// single cheap request used to key the commit cache.
func (c *Client) GetBranchTip(ctx context.Context, owner, repo, branch string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	b, resp, err := c.gh.Repositories.GetBranch(ctx, owner, repo, branch, 0)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("branch %q not found in %s/%s", branch, owner, repo)
		}
		return "", fmt.Errorf("failed to fetch branch %q: %w", branch, err)
	}
	return b.GetCommit().GetSHA(), nil
}

// FetchBranchCommits returns the branch's commits newest first, up to
// maxPages * perPage records. The returned bool is false when the page cap
// truncated the history before its natural end, so callers can flag the
// result as incomplete instead of treating it as authoritative.
func (c *Client) FetchBranchCommits(ctx context.Context, owner, repo, branch string) ([]schema.CommitRecord, bool, error) {
	var records []schema.CommitRecord
	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}

	complete := true
	for page := 1; page <= c.maxPages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, false, err
		}

		opts.Page = page
		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusConflict {
				// GitHub returns 409 for empty repositories.
				return nil, true, nil
			}
			return nil, false, fmt.Errorf("failed to list commits for %s/%s@%s: %w", owner, repo, branch, err)
		}

		for _, rc := range commits {
			records = append(records, mapCommit(rc))
		}

		if resp.NextPage == 0 {
			break
		}
		if page == c.maxPages {
			complete = false
		}
	}
	return records, complete, nil
}

// FetchCommitDetails enriches records with per-commit diff stats fetched
// concurrently. Input order is preserved in the result. A failed detail
// lookup leaves that record without stats rather than failing the run.
func (c *Client) FetchCommitDetails(ctx context.Context, owner, repo string, records []schema.CommitRecord) ([]schema.CommitRecord, error) {
	enriched := make([]schema.CommitRecord, len(records))
	copy(enriched, records)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i := range enriched {
		g.Go(func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}

			detail, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, enriched[i].SHA, nil)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("skipping diff stats for %.8s", enriched[i].SHA), err)
				return nil
			}
			applyCommitDetail(&enriched[i], detail)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}
