package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/sheets/v4"

	"github.com/schoolops/student-sync/roster"
)

// Concurrent worksheet reads are capped to stay well inside the Sheets API per-user quota.
const maxConcurrentReads = 4

// checkWorksheets verifies that the spreadsheet has a worksheet for each of the selected cohorts
// (and for the log range, if any) before anything is read.
func checkWorksheets(ctx context.Context, google *sheets.Service, id string, cohorts []roster.Cohort, logRange string) error {
	spreadsheet, err := getSpreadsheet(google, id, ctx)
	if err != nil {
		return err
	}

	for _, cohort := range cohorts {
		if _, err := getSheet(spreadsheet, cohort.Worksheet()); err != nil {
			return fmt.Errorf("cohort '%s': %v", strings.TrimSpace(cohort.Label), err)
		}
	}

	if logRange != "" {
		if _, err := getSheet(spreadsheet, logRange); err != nil {
			return err
		}
	}

	return nil
}

// readCohorts fetches the worksheet for each cohort. Worksheets are read concurrently but the
// rows are returned in cohort order.
func readCohorts(ctx context.Context, google *sheets.Service, spreadsheet string, cohorts []roster.Cohort, log *zap.Logger) ([]roster.Row, error) {
	results := make([][]roster.Row, len(cohorts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, cohort := range cohorts {
		g.Go(func() error {
			sheet := cohort.Worksheet()
			area := fmt.Sprintf("'%s'", strings.ReplaceAll(sheet, "'", "''"))

			response, err := google.Spreadsheets.Values.Get(spreadsheet, area).
				ValueRenderOption("UNFORMATTED_VALUE").
				Context(ctx).
				Do()
			if err != nil {
				return fmt.Errorf("unable to retrieve data from worksheet '%s' (%v)", sheet, err)
			}

			rows, err := roster.MakeRecords(sheet, response)
			if err != nil {
				return err
			}

			log.Info("read worksheet", zap.String("worksheet", sheet), zap.Int("rows", len(rows)))
			results[i] = rows

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := []roster.Row{}
	for _, r := range results {
		rows = append(rows, r...)
	}

	return rows, nil
}

// summary is a single line in the 'log' worksheet.
type summary struct {
	timestamp time.Time
	run       *roster.Run
	report    *roster.Report
	dryrun    bool
	err       error
}

// appendLog appends a sync summary to the log worksheet. If the log worksheet has a header row the
// values are written to the matching columns, otherwise to the default column order.
func appendLog(ctx context.Context, google *sheets.Service, spreadsheet string, area string, s summary) error {
	index := map[string]int{
		"timestamp": 0,
		"run":       1,
		"operator":  2,
		"cohorts":   3,
		"purged":    4,
		"inserted":  5,
		"updated":   6,
		"skipped":   7,
		"failed":    8,
		"result":    9,
	}

	response, err := google.Spreadsheets.Values.Get(spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve column headers from log worksheet (%v)", err)
	}

	if len(response.Values) > 0 {
		header := response.Values[0]
		columns := map[string]int{}

		for i, v := range header {
			k := normalise(fmt.Sprintf("%v", v))
			if _, ok := index[k]; ok {
				columns[k] = i
			}
		}

		if len(columns) > 0 {
			index = columns
		}
	}

	columns := 0
	for _, v := range index {
		if v >= columns {
			columns = v + 1
		}
	}

	row := make([]interface{}, columns)
	for i := range row {
		row[i] = ""
	}

	for k, v := range s.values() {
		if ix, ok := index[k]; ok {
			row[ix] = v
		}
	}

	rows := sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	if _, err := google.Spreadsheets.Values.Append(spreadsheet, area, &rows).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error writing log to Google Sheets (%w)", err)
	}

	return nil
}

func (s summary) values() map[string]interface{} {
	cohorts := []string{}
	for _, c := range s.run.Cohorts {
		cohorts = append(cohorts, c.Worksheet())
	}

	result := "ok"
	switch {
	case s.err != nil:
		result = s.err.Error()
	case s.dryrun:
		result = "dryrun"
	}

	values := map[string]interface{}{
		"timestamp": s.timestamp.Format("2006-01-02 15:04:05"),
		"run":       s.run.ID.String(),
		"operator":  s.run.Operator,
		"cohorts":   strings.Join(cohorts, ", "),
		"result":    result,
	}

	if s.report != nil {
		values["purged"] = s.report.Purged
		values["inserted"] = s.report.Inserted
		values["updated"] = s.report.Updated
		values["skipped"] = s.report.Skipped
		values["failed"] = len(s.report.Failed)
	}

	return values
}
