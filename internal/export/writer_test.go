package export

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"drs-export-worker/internal/excel"
	"drs-export-worker/internal/models"
	"drs-export-worker/internal/reports"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockAudit struct {
	records []models.ExportRecord
	err     error
}

func (m *mockAudit) InsertExportRecord(record models.ExportRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}

func testWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f, err := excel.NewWorkbook(excel.SheetInput{
		Title:      "INCIDENT REPORT",
		Columns:    []reports.Column{{Field: "Account_Num", Kind: reports.KindText}},
		DateLayout: reports.LayoutDateTime,
	})
	require.NoError(t, err)
	return f
}

func TestWriteProducesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	audit := &mockAudit{}
	writer := NewWriter(dir, audit)

	f := testWorkbook(t)
	defer f.Close()

	path, err := writer.Write(f, "incidents_details", 7, map[string]interface{}{"status": "Reject"}, "run-1")
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^incidents_details_\d{8}_\d{6}\d{6}\.xlsx$`)
	assert.True(t, pattern.MatchString(filepath.Base(path)), "unexpected filename %s", filepath.Base(path))

	_, err = os.Stat(path)
	require.NoError(t, err)

	require.Len(t, audit.records, 1)
	record := audit.records[0]
	assert.Equal(t, filepath.Base(path), record.FileName)
	assert.True(t, filepath.IsAbs(record.FilePath))
	assert.Equal(t, 7, record.RecordCount)
	assert.Equal(t, "Reject", record.AppliedFilters["status"])
	assert.Equal(t, "run-1", record.RunID)
}

func TestWriteCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	writer := NewWriter(dir, &mockAudit{})

	f := testWorkbook(t)
	defer f.Close()

	path, err := writer.Write(f, "incidents_details", 0, nil, "run-1")
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestAuditFailureDoesNotInvalidateExport(t *testing.T) {
	dir := t.TempDir()
	audit := &mockAudit{err: errors.New("audit collection unavailable")}
	writer := NewWriter(dir, audit)

	f := testWorkbook(t)
	defer f.Close()

	path, err := writer.Write(f, "incidents_details", 3, nil, "run-1")
	require.NoError(t, err, "the file on disk is the authoritative result")

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestConsecutiveWritesUseDistinctFilenames(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, &mockAudit{})

	f1 := testWorkbook(t)
	defer f1.Close()
	f2 := testWorkbook(t)
	defer f2.Close()

	path1, err := writer.Write(f1, "incidents_details", 0, nil, "run-1")
	require.NoError(t, err)
	path2, err := writer.Write(f2, "incidents_details", 0, nil, "run-1")
	require.NoError(t, err)

	assert.NotEqual(t, path1, path2)
}
