package report

import (
	"io"

	"go.uber.org/zap"

	"github.com/vyrodovalexey/agrostock/internal/model"
)

// Report names, used in logs and metrics.
const (
	NameRecent = "recent"
	NameFull   = "full"
)

// Exporter writes the two inventory reports to fixed paths.
type Exporter struct {
	recentPath string
	fullPath   string
	windowDays int
	logger     *zap.Logger
}

// NewExporter creates an Exporter.
func NewExporter(recentPath, fullPath string, windowDays int, logger *zap.Logger) *Exporter {
	return &Exporter{
		recentPath: recentPath,
		fullPath:   fullPath,
		windowDays: windowDays,
		logger:     logger,
	}
}

// RecentPath returns the JSON report location.
func (e *Exporter) RecentPath() string { return e.recentPath }

// FullPath returns the text report location.
func (e *Exporter) FullPath() string { return e.fullPath }

// WindowDays returns the recent report window.
func (e *Exporter) WindowDays() int { return e.windowDays }

// ExportRecent writes the recent movement report and returns the number
// of items it lists. An empty inventory yields an empty JSON array.
func (e *Exporter) ExportRecent(items []model.Item, today model.Date) (int, error) {
	entries := Recent(items, today, e.windowDays)

	err := WriteFile(e.recentPath, func(w io.Writer) error {
		return WriteRecentJSON(w, entries)
	})
	if err != nil {
		e.logger.Error("failed to write report",
			zap.String("report", NameRecent),
			zap.String("path", e.recentPath),
			zap.Error(err),
		)
		return 0, err
	}

	e.logger.Info("report written",
		zap.String("report", NameRecent),
		zap.String("path", e.recentPath),
		zap.Int("items", len(entries)),
		zap.Int("window_days", e.windowDays),
	)

	return len(entries), nil
}

// ExportFull writes the full text report. It returns ErrEmptyInventory
// without touching the file system when items is empty.
func (e *Exporter) ExportFull(items []model.Item) error {
	if len(items) == 0 {
		return ErrEmptyInventory
	}

	err := WriteFile(e.fullPath, func(w io.Writer) error {
		return WriteFullText(w, items)
	})
	if err != nil {
		e.logger.Error("failed to write report",
			zap.String("report", NameFull),
			zap.String("path", e.fullPath),
			zap.Error(err),
		)
		return err
	}

	e.logger.Info("report written",
		zap.String("report", NameFull),
		zap.String("path", e.fullPath),
		zap.Int("items", len(items)),
	)

	return nil
}
