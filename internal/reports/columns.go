package reports

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ColumnKind selects the display formatting for a projected field
type ColumnKind int

const (
	KindText     ColumnKind = iota
	KindObjectID            // identifier rendered as its hex string
	KindDateTime            // rendered per the report's date layout
	KindCount               // numeric count coerced to integer display
	KindCurrency            // grouped with two decimal places
)

// Column maps one document field to a spreadsheet column by exact key
// lookup
type Column struct {
	Field string
	Kind  ColumnKind
}

// Header returns the display form of the column: underscores replaced by
// spaces, title-cased
func (c Column) Header() string {
	return cases.Title(language.English).String(strings.ReplaceAll(c.Field, "_", " "))
}
