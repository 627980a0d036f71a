package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type placementCounter interface {
	CountProfiles(ctx context.Context) (int, error)
	CountStudents(ctx context.Context) (int, error)
	CountCompanies(ctx context.Context) (int, error)
	CountJobs(ctx context.Context) (int, error)
	CountApplications(ctx context.Context) (int, error)
	PlacementSummary(ctx context.Context) ([]models.CompanyPlacementSummary, error)
}

const analyticsCountsCacheKey = "analytics:counts"

// AnalyticsService aggregates the portal-wide counters shown on the admin
// dashboard. The five counts are gathered concurrently and each failed
// counter degrades to zero so one slow or broken table never blanks the
// whole card row.
type AnalyticsService struct {
	repo     placementCounter
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(repo placementCounter, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AnalyticsService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Counts returns the placement counters and whether they came from cache.
func (s *AnalyticsService) Counts(ctx context.Context) (*models.PlacementCounts, bool, error) {
	var cached models.PlacementCounts
	if hit, err := s.cache.Get(ctx, analyticsCountsCacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	counts := s.gather(ctx)

	if err := s.cache.Set(ctx, analyticsCountsCacheKey, counts, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache analytics counts", zap.Error(err))
	}

	return counts, false, nil
}

func (s *AnalyticsService) gather(ctx context.Context) *models.PlacementCounts {
	counts := &models.PlacementCounts{}

	jobs := []struct {
		name  string
		count func(context.Context) (int, error)
		dest  *int
	}{
		{"profiles", s.repo.CountProfiles, &counts.TotalProfiles},
		{"students", s.repo.CountStudents, &counts.TotalStudents},
		{"companies", s.repo.CountCompanies, &counts.TotalCompanies},
		{"jobs", s.repo.CountJobs, &counts.TotalJobs},
		{"applications", s.repo.CountApplications, &counts.TotalApplications},
	}

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(name string, count func(context.Context) (int, error), dest *int) {
			defer wg.Done()
			n, err := count(ctx)
			if err != nil {
				s.logger.Warn("analytics counter failed", zap.String("counter", name), zap.Error(err))
				return
			}
			*dest = n
		}(job.name, job.count, job.dest)
	}
	wg.Wait()

	return counts
}

// PlacementSummary returns the per-company aggregates behind the placement
// report export. Unlike the counters this is a single query, so a failure is
// surfaced rather than zeroed.
func (s *AnalyticsService) PlacementSummary(ctx context.Context) ([]models.CompanyPlacementSummary, error) {
	summary, err := s.repo.PlacementSummary(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate placement summary")
	}
	if summary == nil {
		summary = []models.CompanyPlacementSummary{}
	}
	return summary, nil
}
