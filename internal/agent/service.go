// Package agent orchestrates the ingestion pipeline: adapter selection,
// fetch, per-record and batch analysis, dedup, and persistence.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/gosocial/internal/analysis"
	"github.com/jonesrussell/gosocial/internal/events"
	"github.com/jonesrussell/gosocial/internal/logger"
	"github.com/jonesrussell/gosocial/internal/models"
	"github.com/jonesrussell/gosocial/internal/platform"
)

// ErrNoHistoricalContent is returned by Recommendations when nothing has been
// stored for the blogger yet.
var ErrNoHistoricalContent = errors.New("no content found for blogger")

// ContentStore is the persistence boundary the orchestrator depends on.
// The PostgreSQL repository implements it.
type ContentStore interface {
	Insert(ctx context.Context, content *models.Content) error
	FindByPlatformAndContentURL(ctx context.Context, platform, contentURL string) (*models.Content, error)
	FindByPlatformAndBlogger(ctx context.Context, platform, bloggerName string) ([]models.Content, error)
	FindSince(ctx context.Context, platform string, since time.Time) ([]models.Content, error)
}

// Service runs ingestion requests against the adapter registry.
type Service struct {
	registry        *platform.Registry
	analyzer        analysis.Analyzer
	store           ContentStore
	publisher       *events.Publisher
	logger          logger.Logger
	analysisWorkers int
	now             func() time.Time
}

func NewService(
	registry *platform.Registry,
	analyzer analysis.Analyzer,
	store ContentStore,
	publisher *events.Publisher,
	analysisWorkers int,
	log logger.Logger,
) *Service {
	if analysisWorkers <= 0 {
		analysisWorkers = 1
	}
	return &Service{
		registry:        registry,
		analyzer:        analyzer,
		store:           store,
		publisher:       publisher,
		logger:          log,
		analysisWorkers: analysisWorkers,
		now:             time.Now,
	}
}

// Platforms returns the registered platform keys.
func (s *Service) Platforms() []string {
	return s.registry.Keys()
}

// Ingest runs one fetch/analyze/persist cycle. It fails only on request-shape
// violations (unknown platform, invalid identifier); fetch, analysis, and
// storage failures degrade per record or per step, never abort the batch.
func (s *Service) Ingest(ctx context.Context, req *models.ContentAnalysisRequest) (*models.ContentAnalysisResponse, error) {
	start := s.now()
	req.ApplyDefaults()

	adapter, ok := s.registry.Get(req.Platform)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedPlatform, req.Platform)
	}

	if !adapter.ValidateIdentifier(req.BloggerIdentifier) {
		return nil, fmt.Errorf("%w for platform %s", models.ErrInvalidIdentifier, req.Platform)
	}

	key, err := adapter.ResolveIdentifier(req.BloggerIdentifier)
	if err != nil {
		return nil, err
	}

	contents := adapter.FetchContent(ctx, key, req.Limit)
	s.logger.Info("Fetched blogger content",
		logger.String("platform", req.Platform),
		logger.String("identifier", req.BloggerIdentifier),
		logger.Int("count", len(contents)),
	)

	if req.WantsAnalysis() {
		s.analyzeEach(ctx, contents)
	}

	s.persist(ctx, contents)

	overallAnalysis := ""
	if req.WantsAnalysis() && len(contents) > 0 {
		overallAnalysis, err = s.analyzer.AnalyzeBatch(ctx, contents)
		if err != nil {
			s.logger.Warn("Batch analysis failed",
				logger.String("platform", req.Platform),
				logger.Error(err),
			)
			overallAnalysis = "Overall analysis failed: " + err.Error()
		}
	}

	bloggerName := "Unknown"
	if len(contents) > 0 {
		bloggerName = contents[0].BloggerName
	}

	s.publisher.PublishAsync(events.IngestEvent{
		EventType:     events.ContentIngested,
		Platform:      req.Platform,
		BloggerName:   bloggerName,
		TotalContents: len(contents),
	})

	return &models.ContentAnalysisResponse{
		Platform:         req.Platform,
		BloggerName:      bloggerName,
		TotalContents:    len(contents),
		Contents:         contents,
		OverallAnalysis:  overallAnalysis,
		ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
	}, nil
}

// analyzeEach attaches per-record analysis on a bounded worker pool. Records
// are independent after fetch, so calls run concurrently; a failed call
// leaves that record's analysis empty and never drops the record.
func (s *Service) analyzeEach(ctx context.Context, contents []models.Content) {
	sem := make(chan struct{}, s.analysisWorkers)
	var wg sync.WaitGroup

	for i := range contents {
		wg.Add(1)
		sem <- struct{}{}

		go func(content *models.Content) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := s.analyzer.AnalyzeContent(ctx, content)
			if err != nil {
				s.logger.Warn("Content analysis failed",
					logger.String("platform", content.Platform),
					logger.String("content_url", content.ContentURL),
					logger.Error(err),
				)
				return
			}
			content.Analysis = result
		}(&contents[i])
	}

	wg.Wait()
}

// persist stores the batch with dedup on (platform, contentUrl). Records
// without a content URL are always inserted. Storage failures are logged and
// never abort the batch; a cancelled request skips the persist step entirely
// so a partial batch is never half-stored.
func (s *Service) persist(ctx context.Context, contents []models.Content) {
	if ctx.Err() != nil {
		s.logger.Warn("Request cancelled before persist, skipping storage",
			logger.Error(ctx.Err()),
		)
		return
	}

	for i := range contents {
		content := &contents[i]

		if content.ContentURL != "" {
			_, err := s.store.FindByPlatformAndContentURL(ctx, content.Platform, content.ContentURL)
			if err == nil {
				continue // already stored
			}
			if !errors.Is(err, models.ErrContentNotFound) {
				s.logger.Warn("Dedup lookup failed, attempting insert",
					logger.String("content_url", content.ContentURL),
					logger.Error(err),
				)
			}
		}

		if err := s.store.Insert(ctx, content); err != nil {
			if errors.Is(err, models.ErrDuplicateContent) {
				continue // lost an insert race, already stored
			}
			s.logger.Warn("Failed to store content",
				logger.String("platform", content.Platform),
				logger.String("content_url", content.ContentURL),
				logger.Error(err),
			)
		}
	}
}

// HistoricalContent returns a blogger's stored records, most recent first.
func (s *Service) HistoricalContent(ctx context.Context, platformKey, bloggerName string) ([]models.Content, error) {
	return s.store.FindByPlatformAndBlogger(ctx, platformKey, bloggerName)
}

// RecentContent returns records across all platforms published within the
// last hours.
func (s *Service) RecentContent(ctx context.Context, hours int) ([]models.Content, error) {
	since := s.now().Add(-time.Duration(hours) * time.Hour)
	return s.store.FindSince(ctx, "", since)
}

// Recommendations generates strategy recommendations from a blogger's stored
// performance history.
func (s *Service) Recommendations(ctx context.Context, platformKey, bloggerName string) (string, error) {
	contents, err := s.store.FindByPlatformAndBlogger(ctx, platformKey, bloggerName)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	if len(contents) == 0 {
		return "", ErrNoHistoricalContent
	}
	return s.analyzer.Recommendations(ctx, platformKey, bloggerName, contents)
}
