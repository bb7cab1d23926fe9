// Package importer runs catalog imports and holds the latest catalog
// snapshot. A snapshot is replaced only by a fully built one; a failed
// refresh leaves the previous snapshot in place.
package importer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brequin/listings/catalog"
	"github.com/brequin/listings/workday"
)

// Fetcher retrieves the raw export document.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	Source() string
}

// Sink receives every new snapshot after it becomes current.
type Sink interface {
	Name() string
	Publish(ctx context.Context, snapshot *Snapshot) error
}

// Snapshot is one completed import. It is shared with readers and must
// not be modified.
type Snapshot struct {
	RunID      uuid.UUID         `json:"runId"`
	ImportedAt time.Time         `json:"importedAt"`
	Source     string            `json:"source"`
	Entries    int               `json:"entries"`
	Catalog    catalog.Catalog   `json:"catalog"`
	Failures   []catalog.Failure `json:"failures"`
}

type Importer struct {
	fetcher Fetcher
	builder *catalog.Builder
	sinks   []Sink
	logger  *zap.Logger
	now     func() time.Time

	refreshMu sync.Mutex
	current   atomic.Pointer[Snapshot]
}

func New(fetcher Fetcher, logger *zap.Logger, sinks ...Sink) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		fetcher: fetcher,
		builder: catalog.NewBuilder(logger.Named("catalog")),
		sinks:   sinks,
		logger:  logger,
		now:     time.Now,
	}
}

// Current returns the latest snapshot, or nil before the first successful
// refresh.
func (im *Importer) Current() *Snapshot {
	return im.current.Load()
}

// Refresh fetches, decodes and builds a new catalog and makes it current.
// Fetch and decode failures abort the run; records that fail validation
// are only skipped. Concurrent calls run one after another.
func (im *Importer) Refresh(ctx context.Context) (*Snapshot, error) {
	im.refreshMu.Lock()
	defer im.refreshMu.Unlock()

	runID := uuid.New()
	logger := im.logger.With(zap.Stringer("run", runID), zap.String("source", im.fetcher.Source()))
	started := im.now()

	content, err := im.fetcher.Fetch(ctx)
	if err != nil {
		logger.Error("fetch failed", zap.Error(err))
		return nil, err
	}

	report, err := workday.Decode(content)
	if err != nil {
		logger.Error("decode failed", zap.Int("bytes", len(content)), zap.Error(err))
		return nil, err
	}

	result, err := im.builder.Build(report.Entries)
	if err != nil {
		logger.Error("build aborted", zap.Error(err))
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	snapshot := &Snapshot{
		RunID:      runID,
		ImportedAt: im.now().UTC(),
		Source:     im.fetcher.Source(),
		Entries:    result.Entries,
		Catalog:    result.Catalog,
		Failures:   result.Failures,
	}
	im.current.Store(snapshot)

	logger.Info("import completed",
		zap.Int("entries", snapshot.Entries),
		zap.Int("courses", len(snapshot.Catalog.Courses)),
		zap.Int("skipped", len(snapshot.Failures)),
		zap.Duration("elapsed", im.now().Sub(started)),
	)

	for _, sink := range im.sinks {
		if err := sink.Publish(ctx, snapshot); err != nil {
			logger.Warn("sink failed", zap.String("sink", sink.Name()), zap.Error(err))
		}
	}

	return snapshot, nil
}

// Watch refreshes every interval until ctx is done. Failed refreshes are
// logged and retried on the next tick.
func (im *Importer) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := im.Refresh(ctx); err != nil {
				im.logger.Warn("scheduled refresh failed", zap.Error(err))
			}
		}
	}
}
