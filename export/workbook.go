package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/brequin/listings/catalog"
)

const sheetName = "Sections"

const dateLayout = "2006-01-02"

var columns = []struct {
	header string
	width  float64
}{
	{"Subject", 9},
	{"Course", 9},
	{"Title", 40},
	{"Credits", 8},
	{"Level", 14},
	{"Format", 12},
	{"Section", 16},
	{"Term", 8},
	{"Delivery", 10},
	{"Status", 10},
	{"Start", 12},
	{"End", 12},
	{"Seats Open", 11},
	{"Seats", 8},
	{"Waitlist Open", 13},
	{"Waitlist", 9},
	{"Meetings", 40},
	{"Instructors", 30},
}

// Workbook writes one row per section, in the order courses are given.
// Untracked capacities are left blank.
func Workbook(courses []catalog.Course) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column.header
		col := colName(i)
		if err := f.SetColWidth(sheetName, col, col, column.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", cell(colName(len(columns)-1), 1), headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, course := range courses {
		for _, section := range course.Sections {
			values := []any{
				course.Subject.Code,
				course.Code,
				course.Title,
				course.Credits,
				string(course.Level),
				string(course.Format),
				section.Code,
				string(section.Term),
				string(section.DeliveryMode),
				section.Status,
				formatDate(section.StartDate),
				formatDate(section.EndDate),
			}
			values = append(values, capacityCells(section.Enrollment)...)
			values = append(values, capacityCells(section.Waitlist)...)
			values = append(values, meetings(section), strings.Join(section.Instructors, "; "))

			if err := f.SetSheetRow(sheetName, cell("A", row), &values); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func capacityCells(c catalog.Capacity) []any {
	if c.Disabled {
		return []any{"", ""}
	}
	return []any{c.Remaining, c.Maximum}
}

func meetings(section catalog.Section) string {
	if len(section.Patterns) == 0 {
		return strings.Join(section.Locations, "; ")
	}
	parts := make([]string, len(section.Patterns))
	for i, pattern := range section.Patterns {
		parts[i] = describePattern(pattern)
	}
	return strings.Join(parts, "; ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
