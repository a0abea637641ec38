package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okarpenko/water-meter-bot/internal/db"
	"github.com/okarpenko/water-meter-bot/internal/logging"
	"github.com/okarpenko/water-meter-bot/internal/report"
	"github.com/okarpenko/water-meter-bot/tools/dateparse"
	"go.uber.org/zap"
)

// ReportStore is the repository behavior the report service needs
type ReportStore interface {
	ReadingsReport(ctx context.Context, start, end time.Time) ([]db.ReportRow, error)
}

// Reports builds date-ranged readings reports and exports them to a
// spreadsheet. An empty entry list with a nil error means there was no
// data in range; a non-nil error means the query itself failed.
type Reports struct {
	store     ReportStore
	exportDir string
	logger    *zap.Logger
}

// NewReports creates a new report service
func NewReports(store ReportStore, exportDir string, logger *zap.Logger) *Reports {
	return &Reports{store: store, exportDir: exportDir, logger: logger}
}

// Build computes per-user report entries for the textual date range.
// Dates accept DD.MM.YYYY or YYYY-MM-DD; empty boundaries mean an
// unbounded range; the end date covers its whole day.
func (s *Reports) Build(ctx context.Context, startStr, endStr string) ([]report.Entry, error) {
	reqLogger := logging.WithRequestID(s.logger, uuid.NewString())

	start, end, err := dateparse.NormalizeRange(startStr, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid report range: %w", err)
	}

	reqLogger.Info("building readings report",
		zap.Time("start", start),
		zap.Time("end", end),
	)

	rows, err := s.store.ReadingsReport(ctx, start, end)
	if err != nil {
		reqLogger.Error("readings report query failed", zap.Error(err))
		return nil, err
	}

	entries := report.Group(rows)

	reqLogger.Info("readings report built",
		zap.Int("rows", len(rows)),
		zap.Int("users", len(entries)),
	)

	return entries, nil
}

// Export writes the entries into a timestamped workbook and returns its
// path. The caller deletes the file after delivery.
func (s *Reports) Export(entries []report.Entry) (string, error) {
	path, err := report.Export(entries, s.exportDir)
	if err != nil {
		s.logger.Error("spreadsheet export failed", zap.Error(err))
		return "", err
	}

	s.logger.Info("spreadsheet exported", zap.String("path", path), zap.Int("users", len(entries)))
	return path, nil
}
