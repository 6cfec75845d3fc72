package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/understat-xg/internal/domain/match"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

// TransformService turns raw match documents into rows for one target team.
type TransformService struct {
	rawRepo match.RawRepository
	team    string
	logger  *logging.Logger
}

func NewTransformService(rawRepo match.RawRepository, team string, logger *logging.Logger) *TransformService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TransformService{
		rawRepo: rawRepo,
		team:    strings.TrimSpace(team),
		logger:  logger.Named("usecase.transform"),
	}
}

func (s *TransformService) Team() string {
	return s.team
}

// Rows derives the full row set for one document, in document order.
// Records the target team did not play are dropped; any other failure aborts.
func (s *TransformService) Rows(ctx context.Context, path string) ([]match.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransformService.Rows")
	defer span.End()

	records, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make([]match.Row, 0, len(records))
	for idx, raw := range records {
		row, ok, err := match.Derive(raw, s.team)
		if err != nil {
			return nil, fmt.Errorf("derive record #%d in %s: %w", idx, path, err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// Summaries is the reduced extraction: id, datetime, team, xG and season.
func (s *TransformService) Summaries(ctx context.Context, path string) ([]match.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransformService.Summaries")
	defer span.End()

	records, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make([]match.Summary, 0, len(records))
	for idx, raw := range records {
		row, ok, err := match.Summarize(raw, s.team)
		if err != nil {
			return nil, fmt.Errorf("summarize record #%d in %s: %w", idx, path, err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type FileFailure struct {
	Path string
	Err  error
}

type AggregateResult struct {
	Rows     []match.Row
	Files    []string
	Failures []FileFailure
}

// Aggregate concatenates the rows of every .json document in dir. A document
// that fails to load or derive is logged and skipped. ErrNoData is returned when
// dir holds no documents or none of them could be processed; a successful
// result may still carry zero rows.
func (s *TransformService) Aggregate(ctx context.Context, dir string) (result AggregateResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransformService.Aggregate")
	defer func() {
		recordSpanError(span, err)
		span.End()
	}()

	paths, err := s.rawRepo.ListDocuments(ctx, dir)
	if err != nil {
		return AggregateResult{}, fmt.Errorf("list documents in %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return AggregateResult{}, fmt.Errorf("%w: no json documents in %s", ErrNoData, dir)
	}

	result.Files = make([]string, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return AggregateResult{}, err
		}

		rows, err := s.rowsIsolated(ctx, path)
		if err != nil {
			s.logger.WarnContext(ctx, "skip match document",
				"file", filepath.Base(path),
				"error", err,
			)
			result.Failures = append(result.Failures, FileFailure{Path: path, Err: err})
			continue
		}
		result.Files = append(result.Files, path)
		result.Rows = append(result.Rows, rows...)
	}

	if len(result.Files) == 0 {
		return result, fmt.Errorf("%w: all %d documents in %s failed", ErrNoData, len(paths), dir)
	}

	s.logger.InfoContext(ctx, "match documents aggregated",
		"dir", dir,
		"files", len(result.Files),
		"failed", len(result.Failures),
		"rows", len(result.Rows),
	)
	return result, nil
}

func (s *TransformService) rowsIsolated(ctx context.Context, path string) (rows []match.Row, err error) {
	recovered := panics.Try(func() {
		rows, err = s.Rows(ctx, path)
	})
	if recovered != nil {
		return nil, recovered.AsError()
	}
	return rows, err
}

func (s *TransformService) load(ctx context.Context, path string) ([]match.Raw, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: document path is required", ErrInvalidInput)
	}
	if s.team == "" {
		return nil, fmt.Errorf("%w: target team is required", ErrInvalidInput)
	}

	records, err := s.rawRepo.LoadDocument(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return records, nil
}

// IsNoData reports whether err is the explicit empty-aggregation signal.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
