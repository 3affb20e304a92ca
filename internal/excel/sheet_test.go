package excel

import (
	"testing"
	"time"

	"drs-export-worker/internal/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testColumns = []reports.Column{
	{Field: "Incident_Id", Kind: reports.KindObjectID},
	{Field: "Account_Num", Kind: reports.KindText},
	{Field: "Created_Dtm", Kind: reports.KindDateTime},
	{Field: "Case Count", Kind: reports.KindCount},
	{Field: "Total_Arrears", Kind: reports.KindCurrency},
}

func TestEmptyRecordSetStillRendersStructure(t *testing.T) {
	f, err := NewWorkbook(SheetInput{
		Title:   "INCIDENT REPORT",
		Columns: testColumns,
		Filters: []reports.FilterEntry{
			{Label: "Action:", Value: "collect CPE"},
			{Label: "Status:", Value: "Incident Open"},
		},
		Rows:       nil,
		DateLayout: reports.LayoutDateTime,
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("INCIDENT REPORT")
	require.NoError(t, err)

	// title, blank, 2 filter rows, blank, header; no data rows
	require.Len(t, rows, 6)
	assert.Equal(t, "INCIDENT REPORT", rows[0][0])

	assert.Empty(t, rows[1])
	require.True(t, len(rows[2]) >= 3)
	assert.Equal(t, "Action:", rows[2][1])
	assert.Equal(t, "collect CPE", rows[2][2])
	assert.Equal(t, "Status:", rows[3][1])
	assert.Equal(t, "Incident Open", rows[3][2])
	assert.Empty(t, rows[4])

	header := rows[5]
	require.Len(t, header, len(testColumns))
	assert.Equal(t, "Incident Id", header[0])
	assert.Equal(t, "Account Num", header[1])
	assert.Equal(t, "Created Dtm", header[2])
}

func TestNoFiltersPlacesHeaderOnSecondRow(t *testing.T) {
	f, err := NewWorkbook(SheetInput{
		Title:      "INCIDENT REPORT",
		Columns:    testColumns,
		DateLayout: reports.LayoutDateTime,
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("INCIDENT REPORT")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Incident Id", rows[1][0])
}

func TestDataRowFormatting(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2025, 5, 20, 14, 30, 45, 0, time.UTC)

	f, err := NewWorkbook(SheetInput{
		Title:   "INCIDENT REPORT",
		Columns: testColumns,
		Rows: []bson.M{
			{
				"Incident_Id":   id,
				"Account_Num":   "ACC-1001",
				"Created_Dtm":   primitive.NewDateTimeFromTime(created),
				"Case Count":    float64(12),
				"Total_Arrears": 45678.5,
			},
			{
				// Missing keys must render as empty strings
				"Account_Num": "ACC-1002",
			},
		},
		DateLayout: reports.LayoutDateTime,
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("INCIDENT REPORT")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	first := rows[2]
	assert.Equal(t, id.Hex(), first[0])
	assert.Equal(t, "ACC-1001", first[1])
	assert.Equal(t, "2025-05-20 14:30:45", first[2])
	assert.Equal(t, "12", first[3])
	assert.Equal(t, "45,678.50", first[4])

	second := rows[3]
	assert.Equal(t, "ACC-1002", second[1])
	if len(second) > 2 {
		assert.Equal(t, "", second[2])
	}
}

func TestUSDateLayout(t *testing.T) {
	requested := time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)

	f, err := NewWorkbook(SheetInput{
		Title:   "REQUEST LOG REPORT",
		Columns: []reports.Column{{Field: "Requested date", Kind: reports.KindDateTime}},
		Rows: []bson.M{
			{"Requested date": primitive.NewDateTimeFromTime(requested)},
		},
		DateLayout: reports.LayoutUSDate,
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("REQUEST LOG REPORT")
	require.NoError(t, err)
	assert.Equal(t, "07/04/2025", rows[2][0])
}

func TestColumnWidths(t *testing.T) {
	f, err := NewWorkbook(SheetInput{
		Title:   "INCIDENT REPORT",
		Columns: testColumns,
		Rows: []bson.M{
			{"Account_Num": "a-very-long-account-identifier-string"},
		},
		DateLayout: reports.LayoutDateTime,
	})
	require.NoError(t, err)
	defer f.Close()

	// Short content floors at the minimum width
	width, err := f.GetColWidth("INCIDENT REPORT", "A")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, width, 0.01)

	// Long content scales by (len + 2) * 1.2
	width, err = f.GetColWidth("INCIDENT REPORT", "B")
	require.NoError(t, err)
	assert.InDelta(t, float64(37+2)*1.2, width, 0.01)
}

func TestLongTitleTruncatedToSheetNameLimit(t *testing.T) {
	title := "EACH LOD OR FINAL REMINDER REPORT" // 33 chars

	f, err := NewWorkbook(SheetInput{
		Title:      title,
		Columns:    testColumns[:1],
		DateLayout: reports.LayoutDateTime,
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(title[:31])
	require.NoError(t, err)
	// Full title is still the cell value
	assert.Equal(t, title, rows[0][0])
}
