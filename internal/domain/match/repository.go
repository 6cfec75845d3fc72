package match

import (
	"context"
	"encoding/json"
)

// Provider fetches one season of a team's played matches as raw records,
// exactly as the upstream source serves them.
type Provider interface {
	FetchTeamResults(ctx context.Context, team string, season int) ([]json.RawMessage, error)
}

// RawRepository stores and reads raw match-list documents.
type RawRepository interface {
	SaveSeason(ctx context.Context, season int, records []json.RawMessage) (string, error)
	ListDocuments(ctx context.Context, dir string) ([]string, error)
	LoadDocument(ctx context.Context, path string) ([]Raw, error)
}

// DatasetWriter serializes derived rows as delimited text named {dir}/{name}.csv.
type DatasetWriter interface {
	WriteRows(ctx context.Context, rows []Row, dir, name string) (string, error)
	WriteSummaries(ctx context.Context, rows []Summary, dir, name string) (string, error)
}
