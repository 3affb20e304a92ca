package excel

import (
	"fmt"
	"time"

	"drs-export-worker/internal/reports"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	minColumnWidth = 20
	// Excel rejects sheet names longer than 31 characters
	maxSheetName = 31
)

var currencyPrinter = message.NewPrinter(language.English)

// SheetInput carries everything needed to render one report sheet
type SheetInput struct {
	Title           string
	Columns         []reports.Column
	Filters         []reports.FilterEntry
	Rows            []bson.M
	DateLayout      string
	FilterSpansData bool
}

// NewWorkbook creates a workbook containing a single rendered report sheet.
// An empty row set still yields the title, filter-summary and header rows.
func NewWorkbook(in SheetInput) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := BuildSheet(f, in); err != nil {
		f.Close()
		return nil, err
	}

	// Drop the default sheet created by excelize
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to remove default sheet")
	}

	return f, nil
}

// BuildSheet renders the report structure onto a new sheet: merged title
// row, filter-summary block, header row, data rows, autofilter and
// recomputed column widths.
func BuildSheet(f *excelize.File, in SheetInput) error {
	sheet := sheetName(in.Title)
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return errors.Wrapf(err, "failed to create sheet %s", sheet)
	}
	f.SetActiveSheet(idx)

	styles, err := NewStyles(f)
	if err != nil {
		return errors.Wrap(err, "failed to register styles")
	}

	colCount := len(in.Columns)
	lastColName, err := excelize.ColumnNumberToName(colCount)
	if err != nil {
		return err
	}

	// Title row merged across all data columns
	row := 1
	titleEnd := fmt.Sprintf("%s%d", lastColName, row)
	if err := f.MergeCell(sheet, "A1", titleEnd); err != nil {
		return errors.Wrap(err, "failed to merge title cell")
	}
	if err := f.SetCellValue(sheet, "A1", in.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", titleEnd, styles.MainHeader); err != nil {
		return err
	}
	row++

	// One row per active filter, label in column 2, value in column 3
	if len(in.Filters) > 0 {
		row++
		for _, entry := range in.Filters {
			labelCell, _ := excelize.CoordinatesToCellName(2, row)
			valueCell, _ := excelize.CoordinatesToCellName(3, row)
			if err := f.SetCellValue(sheet, labelCell, entry.Label); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, labelCell, labelCell, styles.FilterParam); err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, valueCell, entry.Value); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, valueCell, valueCell, styles.FilterValue); err != nil {
				return err
			}
			row++
		}
		row++
	}

	// Header row
	headerRow := row
	maxLens := make([]int, colCount)
	for i, col := range in.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		header := col.Header()
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.SubHeader); err != nil {
			return err
		}
		maxLens[i] = len(header)
	}

	// Data rows
	for _, doc := range in.Rows {
		row++
		for i, col := range in.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			value, display := cellValue(doc[col.Field], col.Kind, in.DateLayout)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styles.Border); err != nil {
				return err
			}
			if len(display) > maxLens[i] {
				maxLens[i] = len(display)
			}
		}
	}

	// Autofilter across all declared columns
	filterEnd := headerRow
	if in.FilterSpansData && row > headerRow {
		filterEnd = row
	}
	filterRef := fmt.Sprintf("A%d:%s%d", headerRow, lastColName, filterEnd)
	if err := f.AutoFilter(sheet, filterRef, nil); err != nil {
		return errors.Wrap(err, "failed to set autofilter")
	}

	// Recompute column widths from populated content
	for i := range in.Columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(maxLens[i]+2) * 1.2
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if err := f.SetColWidth(sheet, colName, colName, width); err != nil {
			return err
		}
	}

	return nil
}

// cellValue converts one raw document value into the cell value and its
// display string, following the column kind's formatting convention.
// Missing keys render as empty strings.
func cellValue(raw interface{}, kind reports.ColumnKind, dateLayout string) (interface{}, string) {
	if raw == nil {
		return "", ""
	}

	switch kind {
	case reports.KindObjectID:
		if id, ok := raw.(primitive.ObjectID); ok {
			return id.Hex(), id.Hex()
		}

	case reports.KindDateTime:
		if t, ok := asTime(raw); ok {
			s := t.Format(dateLayout)
			return s, s
		}

	case reports.KindCount:
		if n, ok := asFloat(raw); ok {
			v := int64(n)
			s := fmt.Sprintf("%d", v)
			return v, s
		}

	case reports.KindCurrency:
		if n, ok := asFloat(raw); ok {
			s := currencyPrinter.Sprintf("%.2f", n)
			return s, s
		}
	}

	s := fmt.Sprintf("%v", raw)
	return s, s
}

func asTime(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	default:
		return time.Time{}, false
	}
}

func asFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func sheetName(title string) string {
	if len(title) > maxSheetName {
		return title[:maxSheetName]
	}
	return title
}
