package jobs

import (
	"context"

	"go.uber.org/zap"
)

// Reindexer is the part of class search the reindex job drives.
type Reindexer interface {
	Reindex(ctx context.Context) (int, error)
}

// SearchReindex refreshes the class search index so enrollment counts and
// missed status updates converge.
type SearchReindex struct {
	search   Reindexer
	schedule string
	logger   *zap.Logger
}

func NewSearchReindex(search Reindexer, schedule string, logger *zap.Logger) *SearchReindex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchReindex{search: search, schedule: schedule, logger: logger}
}

func (j *SearchReindex) Name() string     { return "search-reindex" }
func (j *SearchReindex) Schedule() string { return j.schedule }

func (j *SearchReindex) Run(ctx context.Context) error {
	n, err := j.search.Reindex(ctx)
	if err != nil {
		return err
	}
	j.logger.Debug("search index refreshed", zap.Int("classes", n))
	return nil
}
