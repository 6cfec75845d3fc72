package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/understat-xg/internal/domain/match"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
)

const defaultAggregateName = "combined"

type ExportConfig struct {
	// DatasetDir receives per-document datasets from the batch conversion.
	DatasetDir string
	// ExportDir is used when a caller writes rows without naming a directory.
	ExportDir string
}

// ExportService writes derived rows as CSV datasets.
type ExportService struct {
	transform *TransformService
	rawRepo   match.RawRepository
	writer    match.DatasetWriter
	cfg       ExportConfig
	logger    *logging.Logger
}

func NewExportService(transform *TransformService, rawRepo match.RawRepository, writer match.DatasetWriter, cfg ExportConfig, logger *logging.Logger) *ExportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExportService{
		transform: transform,
		rawRepo:   rawRepo,
		writer:    writer,
		cfg:       cfg,
		logger:    logger.Named("usecase.export"),
	}
}

// WriteRows writes rows to {dir}/{name}.csv, replacing any previous file.
// An empty dir falls back to the configured export directory.
func (s *ExportService) WriteRows(ctx context.Context, rows []match.Row, name, dir string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.WriteRows")
	defer span.End()

	name, dir, err := s.target(name, dir)
	if err != nil {
		return "", err
	}

	path, err := s.writer.WriteRows(ctx, rows, dir, name)
	if err != nil {
		return "", fmt.Errorf("write dataset %s: %w", name, err)
	}
	s.logger.InfoContext(ctx, "dataset written", "path", path, "rows", len(rows))
	return path, nil
}

func (s *ExportService) WriteSummaries(ctx context.Context, rows []match.Summary, name, dir string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.WriteSummaries")
	defer span.End()

	name, dir, err := s.target(name, dir)
	if err != nil {
		return "", err
	}

	path, err := s.writer.WriteSummaries(ctx, rows, dir, name)
	if err != nil {
		return "", fmt.Errorf("write summary dataset %s: %w", name, err)
	}
	s.logger.InfoContext(ctx, "summary dataset written", "path", path, "rows", len(rows))
	return path, nil
}

// ConvertAll transforms each document and writes it straight away under the
// dataset directory, named after the document without its extension. The first
// failure stops the batch; datasets already written are kept.
func (s *ExportService) ConvertAll(ctx context.Context, paths []string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ConvertAll")
	defer span.End()

	written := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		rows, err := s.transform.Rows(ctx, path)
		if err != nil {
			return written, fmt.Errorf("convert %s: %w", path, err)
		}
		out, err := s.WriteRows(ctx, rows, baseName(path), s.cfg.DatasetDir)
		if err != nil {
			return written, fmt.Errorf("convert %s: %w", path, err)
		}
		written = append(written, out)
	}

	s.logger.InfoContext(ctx, "documents converted",
		"team", s.transform.Team(),
		"documents", len(written),
		"dataset_dir", s.cfg.DatasetDir,
	)
	return written, nil
}

// ConvertDirectory runs ConvertAll over every .json document in dir.
func (s *ExportService) ConvertDirectory(ctx context.Context, dir string) ([]string, error) {
	paths, err := s.rawRepo.ListDocuments(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no json documents in %s", ErrNoData, dir)
	}
	return s.ConvertAll(ctx, paths)
}

type AggregateExport struct {
	Path     string
	Rows     int
	Files    int
	Failures []FileFailure
}

// AggregateToCSV aggregates dir and writes the combined rows as one dataset.
// ErrNoData from the aggregation is returned without writing anything.
func (s *ExportService) AggregateToCSV(ctx context.Context, dir, name, outDir string) (AggregateExport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.AggregateToCSV")
	defer span.End()

	result, err := s.transform.Aggregate(ctx, dir)
	if err != nil {
		return AggregateExport{Failures: result.Failures}, err
	}

	if strings.TrimSpace(name) == "" {
		name = defaultAggregateName
	}
	path, err := s.WriteRows(ctx, result.Rows, name, outDir)
	if err != nil {
		return AggregateExport{Failures: result.Failures}, err
	}

	return AggregateExport{
		Path:     path,
		Rows:     len(result.Rows),
		Files:    len(result.Files),
		Failures: result.Failures,
	}, nil
}

// SummaryToCSV writes the reduced extraction of one document.
func (s *ExportService) SummaryToCSV(ctx context.Context, path, name, outDir string) (string, error) {
	rows, err := s.transform.Summaries(ctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		name = baseName(path)
	}
	return s.WriteSummaries(ctx, rows, name, outDir)
}

func (s *ExportService) target(name, dir string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: dataset name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(dir) == "" {
		dir = s.cfg.ExportDir
	}
	if strings.TrimSpace(dir) == "" {
		return "", "", fmt.Errorf("%w: output directory is required", ErrInvalidInput)
	}
	return name, dir, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
