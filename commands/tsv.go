package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/schoolops/student-sync/roster"
)

// The columns the sync uses, in the order they are written to a TSV file. Any other worksheet
// columns are appended after these.
var columns = []string{"Name", "Nickname", "Email", "Year", "Room", "Track", "English", "Status"}

// rowsToTSV writes the rows with a leading 'Sheet' and 'Row' column identifying where each row came
// from.
func rowsToTSV(f io.Writer, rows []roster.Row) error {
	header := []string{}
	seen := map[string]bool{}

	for _, h := range columns {
		for _, row := range rows {
			if _, ok := row.Values[h]; ok {
				header = append(header, h)
				seen[h] = true
				break
			}
		}
	}

	for _, row := range rows {
		for _, h := range keys(row.Values) {
			if !seen[h] {
				header = append(header, h)
				seen[h] = true
			}
		}
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(append([]string{"Sheet", "Row"}, header...)); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{row.Sheet, fmt.Sprintf("%v", row.Index)}
		for _, h := range header {
			record = append(record, row.Values.String(h))
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func keys(r roster.RawRecord) []string {
	list := make([]string, 0, len(r))
	for k := range r {
		list = append(list, k)
	}

	sort.Strings(list)

	return list
}
