package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// RawRecord is a single worksheet row keyed by column header. Values are strings or, for cells
// holding numbers, float64.
type RawRecord map[string]any

// Row is a RawRecord along with the worksheet and 1-based row number it was read from.
type Row struct {
	Sheet  string
	Index  int
	Values RawRecord
}

// MakeRecords converts a worksheet range into rows keyed by the header in the first row. Cells
// missing from the end of a short row are returned as empty strings and blank rows are dropped.
// An empty worksheet has no rows. A column with a blank header is ignored, but only one blank
// header is allowed since the columns could not otherwise be told apart.
func MakeRecords(sheet string, data *sheets.ValueRange) ([]Row, error) {
	if data == nil || len(data.Values) == 0 {
		return []Row{}, nil
	}

	// ... header
	header := []string{}
	index := map[string]int{}
	for i, v := range data.Values[0] {
		h := ""
		if v != nil {
			h = clean(fmt.Sprintf("%v", v))
		}

		if ix, ok := index[h]; ok {
			if h == "" {
				return nil, fmt.Errorf("%s: more than one blank column name in header (columns %d and %d)", sheet, ix+1, i+1)
			}

			return nil, fmt.Errorf("%s: duplicate column name '%s'", sheet, h)
		}

		index[h] = i
		header = append(header, h)
	}

	// ... records
	rows := []Row{}
	for i, cells := range data.Values[1:] {
		if blank(cells) {
			continue
		}

		record := RawRecord{}
		for ix, h := range header {
			if h == "" {
				continue
			}

			var v any = ""
			if ix < len(cells) && cells[ix] != nil {
				v = cells[ix]
			}

			record[h] = v
		}

		rows = append(rows, Row{
			Sheet:  sheet,
			Index:  i + 2,
			Values: record,
		})
	}

	return rows, nil
}

func (r Row) String() string {
	return fmt.Sprintf("%s row %d", r.Sheet, r.Index)
}

// Get returns the raw value of a column and whether the column exists at all.
func (r RawRecord) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// String returns the column value as a trimmed string, formatting numbers without a trailing
// '.0'.
func (r RawRecord) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}

	return stringify(v)
}

// Int returns the column value as an integer. Numeric strings are accepted.
func (r RawRecord) Int(field string) (int, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing")
	}

	switch n := v.(type) {
	case int:
		return n, nil

	case int64:
		return int(n), nil

	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("'%v' is not a whole number", n)
		}
		return int(n), nil

	case string:
		i, err := strconv.Atoi(clean(n))
		if err != nil {
			return 0, fmt.Errorf("'%v' is not a number", n)
		}
		return i, nil

	default:
		return 0, fmt.Errorf("unsupported value '%v'", v)
	}
}

func stringify(v any) string {
	switch n := v.(type) {
	case string:
		return clean(n)

	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)

	default:
		return clean(fmt.Sprintf("%v", v))
	}
}

func blank(cells []any) bool {
	for _, c := range cells {
		if c != nil && clean(fmt.Sprintf("%v", c)) != "" {
			return false
		}
	}

	return true
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
