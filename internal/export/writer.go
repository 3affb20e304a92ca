package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"drs-export-worker/internal/logger"
	"drs-export-worker/internal/models"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// AuditRecorder persists export audit records. Insert failures are
// non-fatal to the export.
type AuditRecorder interface {
	InsertExportRecord(record models.ExportRecord) error
}

// Writer persists rendered workbooks to the export directory and records
// an audit entry for each file written
type Writer struct {
	dir   string
	audit AuditRecorder
}

// NewWriter creates a writer targeting the configured export directory
func NewWriter(dir string, audit AuditRecorder) *Writer {
	return &Writer{dir: dir, audit: audit}
}

// Write saves the workbook under a timestamped filename and inserts an
// audit record. The microsecond suffix keeps concurrent exports of the
// same report type from colliding. The file on disk is the authoritative
// result; an audit-insert failure is logged and swallowed.
func (w *Writer) Write(f *excelize.File, prefix string, recordCount int, appliedFilters map[string]interface{}, runID string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create export directory %s", w.dir)
	}

	now := time.Now()
	filename := fmt.Sprintf("%s_%s%06d.xlsx", prefix, now.Format("20060102_150405"), now.Nanosecond()/1000)
	path := filepath.Join(w.dir, filename)

	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrapf(err, "failed to save workbook to %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	record := models.ExportRecord{
		FileName:       filename,
		FilePath:       absPath,
		ExportedAt:     now,
		RecordCount:    recordCount,
		AppliedFilters: appliedFilters,
		RunID:          runID,
	}

	if err := w.audit.InsertExportRecord(record); err != nil {
		logger.Error("failed to insert export audit record",
			zap.String("file", filename),
			zap.Error(err))
	} else {
		logger.Info("export details written to download log",
			zap.String("file", filename),
			zap.Int("records", recordCount))
	}

	return path, nil
}
