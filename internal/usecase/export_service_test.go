package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/understat-xg/internal/domain/match"
	"github.com/riskibarqy/understat-xg/internal/infrastructure/repository/filesystem"
	matchmock "github.com/riskibarqy/understat-xg/internal/mocks/domain/match"
	"github.com/stretchr/testify/mock"
)

func newFilesystemExport(t *testing.T, jsonDir, datasetDir, exportDir string) *ExportService {
	t.Helper()

	rawRepo := filesystem.NewRawMatchRepository(jsonDir, nil)
	transform := NewTransformService(rawRepo, bayern, nil)
	return NewExportService(transform, rawRepo, filesystem.NewDatasetRepository(nil), ExportConfig{
		DatasetDir: datasetDir,
		ExportDir:  exportDir,
	}, nil)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestExportService_ConvertAll_WritesOneDatasetPerDocument(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	jsonDir := filepath.Join(root, "JSON Files")
	if err := os.MkdirAll(jsonDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	first := writeDocument(t, jsonDir, "2020-2021.json",
		matchJSON("1", bayern, "Schalke 04", "w", "2020-09-18 18:30:00"),
		matchJSON("2", "Mainz", "Augsburg", "d", "2020-09-19 13:30:00"),
	)
	second := writeDocument(t, jsonDir, "2021-2022.json",
		matchJSON("3", "Borussia M.Gladbach", bayern, "d", "2021-08-13 18:30:00"),
	)

	datasetDir := filepath.Join(root, "Data for Bayern Munich")
	svc := newFilesystemExport(t, jsonDir, datasetDir, filepath.Join(root, "output"))

	written, err := svc.ConvertAll(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("convert all: %v", err)
	}
	want := []string{
		filepath.Join(datasetDir, "2020-2021.csv"),
		filepath.Join(datasetDir, "2021-2022.csv"),
	}
	if len(written) != len(want) || written[0] != want[0] || written[1] != want[1] {
		t.Fatalf("unexpected outputs %v want %v", written, want)
	}

	lines := readLines(t, want[0])
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,datetime,season,") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,2020-09-18 18:30:00,2020-2021,") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestExportService_ConvertAll_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	good := writeDocument(t, root, "good.json",
		matchJSON("1", bayern, "Schalke 04", "w", "2020-09-18 18:30:00"),
	)
	bad := writeDocument(t, root, "bad.json", `{"id":`)
	never := writeDocument(t, root, "never.json",
		matchJSON("2", bayern, "Mainz", "w", "2020-10-18 18:30:00"),
	)

	datasetDir := filepath.Join(root, "datasets")
	svc := newFilesystemExport(t, root, datasetDir, "")

	written, err := svc.ConvertAll(context.Background(), []string{good, bad, never})
	if !errors.Is(err, match.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("expected the first dataset to stay written, got %v", written)
	}
	if _, err := os.Stat(filepath.Join(datasetDir, "never.csv")); !os.IsNotExist(err) {
		t.Fatalf("documents after the failure should not be converted: %v", err)
	}
}

func TestExportService_ConvertDirectory_EmptyIsNoData(t *testing.T) {
	t.Parallel()

	svc := newFilesystemExport(t, t.TempDir(), t.TempDir(), "")
	if _, err := svc.ConvertDirectory(context.Background(), t.TempDir()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestExportService_AggregateToCSV(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeDocument(t, root, "2019-2020.json",
		matchJSON("1", bayern, "Hertha Berlin", "w", "2019-08-16 18:30:00"),
	)
	writeDocument(t, root, "2020-2021.json",
		matchJSON("2", "Hoffenheim", bayern, "w", "2020-09-27 13:30:00"),
	)
	writeDocument(t, root, "broken.json", "[{]")

	outDir := filepath.Join(root, "output")
	svc := newFilesystemExport(t, root, "", outDir)

	out, err := svc.AggregateToCSV(context.Background(), root, "", "")
	if err != nil {
		t.Fatalf("aggregate to csv: %v", err)
	}
	if out.Path != filepath.Join(outDir, "combined.csv") {
		t.Fatalf("unexpected path %q", out.Path)
	}
	if out.Rows != 2 || out.Files != 2 || len(out.Failures) != 1 {
		t.Fatalf("unexpected export summary %+v", out)
	}
	if lines := readLines(t, out.Path); len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(lines))
	}
}

func TestExportService_AggregateToCSV_NoDataWritesNothing(t *testing.T) {
	t.Parallel()

	writer := matchmock.NewDatasetWriter(t)
	rawRepo := matchmock.NewRawRepository(t)
	rawRepo.On("ListDocuments", mock.Anything, "empty").Return([]string{}, nil).Once()

	svc := NewExportService(NewTransformService(rawRepo, bayern, nil), rawRepo, writer, ExportConfig{ExportDir: "output"}, nil)
	if _, err := svc.AggregateToCSV(context.Background(), "empty", "combined", ""); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	writer.AssertNotCalled(t, "WriteRows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService_WriteRows_DefaultsToExportDir(t *testing.T) {
	t.Parallel()

	writer := matchmock.NewDatasetWriter(t)
	rows := []match.Row{{ID: "1", NameOfTeam: bayern}}
	writer.On("WriteRows", mock.Anything, rows, "output", "season").Return("output/season.csv", nil).Once()

	svc := NewExportService(nil, nil, writer, ExportConfig{ExportDir: "output"}, nil)
	path, err := svc.WriteRows(context.Background(), rows, "season", "")
	if err != nil {
		t.Fatalf("write rows: %v", err)
	}
	if path != "output/season.csv" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestExportService_WriteRows_RequiresName(t *testing.T) {
	t.Parallel()

	svc := NewExportService(nil, nil, matchmock.NewDatasetWriter(t), ExportConfig{ExportDir: "output"}, nil)
	if _, err := svc.WriteRows(context.Background(), nil, " ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExportService_SummaryToCSV(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeDocument(t, root, "2021-2022.json",
		matchJSON("7", bayern, "Mainz", "w", "2021-12-01 18:30:00"),
	)
	outDir := filepath.Join(root, "output")
	svc := newFilesystemExport(t, root, "", outDir)

	out, err := svc.SummaryToCSV(context.Background(), path, "", "")
	if err != nil {
		t.Fatalf("summary to csv: %v", err)
	}
	if out != filepath.Join(outDir, "2021-2022.csv") {
		t.Fatalf("unexpected path %q", out)
	}
	lines := readLines(t, out)
	if lines[0] != "id,datetime,name_of_team,xG,season" {
		t.Fatalf("unexpected header %q", lines[0])
	}
}
