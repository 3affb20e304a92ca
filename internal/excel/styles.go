package excel

import (
	"github.com/xuri/excelize/v2"
)

// Styles holds the style IDs used by every report sheet
type Styles struct {
	MainHeader  int
	FilterParam int
	FilterValue int
	SubHeader   int
	Border      int
}

var thinBorder = []excelize.Border{
	{Type: "left", Style: 1, Color: "000000"},
	{Type: "right", Style: 1, Color: "000000"},
	{Type: "top", Style: 1, Color: "000000"},
	{Type: "bottom", Style: 1, Color: "000000"},
}

// NewStyles registers the report styles on a workbook
func NewStyles(f *excelize.File) (*Styles, error) {
	mainHeader, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	filterParam, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	filterValue, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF2CC"}},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	subHeader, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Border: thinBorder,
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return nil, err
	}

	border, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorder,
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	return &Styles{
		MainHeader:  mainHeader,
		FilterParam: filterParam,
		FilterValue: filterValue,
		SubHeader:   subHeader,
		Border:      border,
	}, nil
}
