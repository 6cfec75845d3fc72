package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/understat-xg/internal/domain/match"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
)

const maxFetchWorkers = 8

type FetchService struct {
	provider match.Provider
	rawRepo  match.RawRepository
	workers  int
	logger   *logging.Logger
}

func NewFetchService(provider match.Provider, rawRepo match.RawRepository, workers int, logger *logging.Logger) *FetchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FetchService{
		provider: provider,
		rawRepo:  rawRepo,
		workers:  workers,
		logger:   logger.Named("usecase.fetch"),
	}
}

// SeasonFetch reports the outcome of one season in a range fetch.
type SeasonFetch struct {
	Season     int
	Path       string
	Records    int
	DurationMs int64
	Err        error
}

// FetchSeason pulls one season of team results and stores them verbatim.
// Provider and write failures are returned as-is; nothing is retried.
func (s *FetchService) FetchSeason(ctx context.Context, team string, season int) (path string, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchSeason")
	defer func() {
		recordSpanError(span, err)
		span.End()
	}()

	team = strings.TrimSpace(team)
	if team == "" {
		return "", fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if season <= 0 {
		return "", fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	records, err := s.provider.FetchTeamResults(ctx, team, season)
	if err != nil {
		return "", fmt.Errorf("fetch results team=%q season=%d: %w", team, season, err)
	}

	path, err = s.rawRepo.SaveSeason(ctx, season, records)
	if err != nil {
		return "", fmt.Errorf("save season %s: %w", match.SeasonLabel(season), err)
	}

	s.logger.InfoContext(ctx, "season results downloaded",
		"team", team,
		"season", match.SeasonLabel(season),
		"records", len(records),
		"path", path,
	)
	return path, nil
}

// FetchSeasons fetches every season in [from, to]. Seasons are independent:
// each one is a single request, and a failure does not stop the others.
// The returned slice is ordered by season; the error joins all failures.
func (s *FetchService) FetchSeasons(ctx context.Context, team string, from, to int) ([]SeasonFetch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchSeasons")
	defer span.End()

	if from <= 0 || to < from {
		return nil, fmt.Errorf("%w: invalid season range %d..%d", ErrInvalidInput, from, to)
	}

	count := to - from + 1
	pool, err := ants.NewPool(normalizeFetchWorkers(s.workers, count))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan SeasonFetch, count)
	var workers sync.WaitGroup
	for season := from; season <= to; season++ {
		season := season
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			path, err := s.FetchSeason(ctx, team, season)
			results <- SeasonFetch{
				Season:     season,
				Path:       path,
				DurationMs: time.Since(start).Milliseconds(),
				Err:        err,
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit season %d to worker pool: %w", season, err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]SeasonFetch, 0, count)
	for row := range results {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })

	var errs []error
	for _, row := range out {
		if row.Err != nil {
			s.logger.WarnContext(ctx, "season fetch failed", "season", match.SeasonLabel(row.Season), "error", row.Err)
			errs = append(errs, row.Err)
		}
	}
	return out, errors.Join(errs...)
}

func normalizeFetchWorkers(requested, seasons int) int {
	workers := requested
	if workers <= 0 {
		workers = 1
	}
	if workers > maxFetchWorkers {
		workers = maxFetchWorkers
	}
	if workers > seasons {
		workers = seasons
	}
	return workers
}
