package search

import "context"

// RefreshJob re-fetches the corpus snapshot and pre-warms its embedding
// index on a schedule, so the TTL expiry is usually absorbed in the
// background instead of on a user request.
type RefreshJob struct {
	engine *Engine
}

func NewRefreshJob(engine *Engine) *RefreshJob {
	return &RefreshJob{engine: engine}
}

func (j *RefreshJob) Name() string {
	return "corpus-refresh"
}

func (j *RefreshJob) Run(ctx context.Context) error {
	return j.engine.WarmIndex(ctx)
}
