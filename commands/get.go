package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/schoolops/student-sync/roster"
)

var GetCmd = Get{
	command: command{
		config:      "",
		workdir:     "",
		credentials: "",
		url:         "",
		cohorts:     "",
		debug:       false,
	},

	file: time.Now().Format("roster-2006-01-02T150405.tsv"),
	all:  false,
}

type Get struct {
	command
	file string
	all  bool
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the roster for a set of cohorts and stores it to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "--cohorts <cohorts> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --cohorts <cohorts> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the roster worksheets for the selected cohorts to a TSV file. Only the rows that would be")
	fmt.Println("  synchronised are included unless --all is specified. The user database is not accessed.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    student-sync --debug get --credentials "credentials.json" \`)
	fmt.Println(`                             --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                             --cohorts "Year 9,Year 12 Med" \`)
	fmt.Println(`                             --file "roster.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to 'roster-<yyyy-mm-ddTHHmmss>.tsv'")
	flagset.BoolVar(&cmd.all, "all", cmd.all, "Includes the rows that would be discarded by a sync")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx, conf, log, err := cmd.setup(args)
	if err != nil {
		return err
	}

	defer log.Sync()

	// ... check parameters
	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if strings.TrimSpace(conf.SpreadsheetID) == "" {
		return fmt.Errorf("--url is a required option (or SPREADSHEET_ID in the configuration file)")
	}

	cohorts, err := cmd.selection(newPrompt())
	if err != nil {
		return err
	}

	log.Debug("spreadsheet", zap.String("id", conf.SpreadsheetID), zap.Stringers("cohorts", cohorts))

	// ... read and filter
	google, err := newSheets(ctx, conf.Credentials, SHEETS_READONLY, conf.Workdir)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	if err := checkWorksheets(ctx, google, conf.SpreadsheetID, cohorts, ""); err != nil {
		return err
	}

	rows, err := readCohorts(ctx, google, conf.SpreadsheetID, cohorts, log)
	if err != nil {
		return err
	}

	if !cmd.all {
		filtered := roster.Filter(rows)
		log.Info("filtered roster", zap.Int("read", len(rows)), zap.Int("admissible", filtered.Count))
		rows = filtered.Records
	}

	// ... write to file
	tmp, err := os.CreateTemp(os.TempDir(), "roster")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := rowsToTSV(tmp, rows); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	log.Info("retrieved roster", zap.String("file", cmd.file), zap.Int("rows", len(rows)))

	return nil
}
