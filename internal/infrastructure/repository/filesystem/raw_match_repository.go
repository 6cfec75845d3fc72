package filesystem

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/understat-xg/internal/domain/match"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
)

const (
	documentExt    = ".json"
	documentIndent = "    "
)

// RawMatchRepository keeps raw match-list documents as JSON files.
// Fetched seasons land in dir; reads accept any path.
type RawMatchRepository struct {
	dir    string
	logger *logging.Logger
}

func NewRawMatchRepository(dir string, logger *logging.Logger) *RawMatchRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &RawMatchRepository{
		dir:    dir,
		logger: logger,
	}
}

func (r *RawMatchRepository) SaveSeason(ctx context.Context, season int, records []json.RawMessage) (string, error) {
	if season <= 0 {
		return "", crerr.Newf("season must be greater than zero, got %d", season)
	}
	if records == nil {
		records = []json.RawMessage{}
	}

	data, err := sonic.ConfigStd.MarshalIndent(records, "", documentIndent)
	if err != nil {
		return "", crerr.Wrap(err, "encode season document")
	}

	path := filepath.Join(r.dir, match.SeasonFileName(season))
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}

	r.logger.DebugContext(ctx, "season document written", "path", path, "records", len(records))
	return path, nil
}

// ListDocuments returns the .json files directly inside dir, in listing order.
func (r *RawMatchRepository) ListDocuments(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, crerr.Wrapf(err, "read directory %s", dir)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), documentExt) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	return out, nil
}

func (r *RawMatchRepository) LoadDocument(_ context.Context, path string) ([]match.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read document %s", path)
	}

	var records []match.Raw
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, crerr.Wrapf(match.ErrMalformedRecord, "decode document %s: %v", path, err)
	}
	return records, nil
}
