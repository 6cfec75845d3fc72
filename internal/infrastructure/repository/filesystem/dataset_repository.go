package filesystem

import (
	"context"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"
	"github.com/riskibarqy/understat-xg/internal/domain/match"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
)

const datasetExt = ".csv"

// DatasetRepository writes derived rows as CSV. Existing files are replaced.
type DatasetRepository struct {
	logger *logging.Logger
}

func NewDatasetRepository(logger *logging.Logger) *DatasetRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &DatasetRepository{logger: logger}
}

func (r *DatasetRepository) WriteRows(ctx context.Context, rows []match.Row, dir, name string) (string, error) {
	models := toRowModels(rows)
	return r.write(ctx, &models, len(models), dir, name)
}

func (r *DatasetRepository) WriteSummaries(ctx context.Context, rows []match.Summary, dir, name string) (string, error) {
	models := toSummaryModels(rows)
	return r.write(ctx, &models, len(models), dir, name)
}

func (r *DatasetRepository) write(ctx context.Context, models any, count int, dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", crerr.New("dataset name is required")
	}

	data, err := gocsv.MarshalBytes(models)
	if err != nil {
		return "", crerr.Wrap(err, "encode dataset")
	}

	path := filepath.Join(dir, name+datasetExt)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}

	r.logger.DebugContext(ctx, "dataset file replaced", "path", path, "rows", count)
	return path, nil
}
