package commands

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/schoolops/student-sync/credentials"
	"github.com/schoolops/student-sync/roster"
	"github.com/schoolops/student-sync/store"
)

var SyncCmd = Sync{
	command: command{
		config:      "",
		workdir:     "",
		credentials: "",
		url:         "",
		cohorts:     "",
		debug:       false,
	},

	operator:        "",
	purge:           false,
	yes:             false,
	dryrun:          false,
	continueOnError: false,
	logRange:        "",
	password:        "",
}

type Sync struct {
	command
	operator        string
	purge           bool
	yes             bool
	dryrun          bool
	continueOnError bool
	logRange        string
	password        string
}

func (cmd *Sync) Name() string {
	return "sync"
}

func (cmd *Sync) Description() string {
	return "Synchronises the student records for a set of cohorts from the roster spreadsheet to the user database"
}

func (cmd *Sync) Usage() string {
	return "--cohorts <cohorts> [--operator <name>] [--purge] [--dryrun]"
}

func (cmd *Sync) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] sync [options] --cohorts <cohorts>\n", APP)
	fmt.Println()
	fmt.Println("  Reads the roster worksheets for the selected cohorts, discards incomplete and placeholder rows and")
	fmt.Println("  adds or updates the matching student records in the user database. Students are matched by email.")
	fmt.Println()
	fmt.Println("  With --purge all the existing student records for the selected years are deleted before the roster")
	fmt.Println("  is imported. Purging cannot be undone.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    student-sync sync --cohorts "Year 9,Year 12 Med"`)
	fmt.Println(`    student-sync --debug sync --config config.json --cohorts "Year 9" --purge --operator "Ms Smith"`)
	fmt.Println(`    student-sync sync --cohorts "Year 10" --dryrun --log-range "Log!A1:J"`)
	fmt.Println()
}

func (cmd *Sync) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("sync")

	flagset.StringVar(&cmd.operator, "operator", cmd.operator, "Name recorded as 'syncedBy'. Prompts for a name if not provided")
	flagset.BoolVar(&cmd.purge, "purge", cmd.purge, "Deletes all existing student records for the selected years before importing")
	flagset.BoolVar(&cmd.yes, "yes", cmd.yes, "Skips the confirmation prompts (required when not running from a terminal)")
	flagset.BoolVar(&cmd.dryrun, "dryrun", cmd.dryrun, "Simulates a sync without making any changes to the user database")
	flagset.BoolVar(&cmd.continueOnError, "continue-on-error", cmd.continueOnError, "Continues with the remaining records if a database write fails")
	flagset.StringVar(&cmd.logRange, "log-range", cmd.logRange, "Spreadsheet range for logging the sync result e.g. 'Log!A1:J'. Disabled if not set")
	flagset.StringVar(&cmd.password, "initial-password", cmd.password, "Initial password for new students. Defaults to the placeholder password hash")

	return flagset
}

func (cmd *Sync) Execute(args ...any) error {
	ctx, conf, log, err := cmd.setup(args)
	if err != nil {
		return err
	}

	defer log.Sync()

	p := newPrompt()

	// ... check parameters
	cohorts, err := cmd.selection(p)
	if err != nil {
		return err
	}

	if err := conf.Validate(); err != nil {
		return err
	}

	if cmd.logRange != "" {
		if match := regexp.MustCompile(`(.+?)!.*`).FindStringSubmatch(strings.TrimSpace(cmd.logRange)); len(match) < 2 {
			return fmt.Errorf("invalid log-range '%s' - expected something like 'Log!A1:J'", cmd.logRange)
		}
	}

	defaults, err := credentials.NewDefaults(cmd.password)
	if err != nil {
		return err
	}

	operator := strings.TrimSpace(cmd.operator)
	if operator == "" && !cmd.yes && p.interactive {
		if operator, err = p.text("What is your name?"); err != nil {
			return err
		}
	}

	if operator == "" {
		operator = os.Getenv("USER")
	}

	if operator == "" {
		return fmt.Errorf("--operator is a required option")
	}

	run := roster.NewRun(operator, cohorts, false, log)
	run.IssuedID = defaults.IssuedID

	log.Info("starting sync",
		zap.String("operator", operator),
		zap.Stringers("cohorts", cohorts),
		zap.String("spreadsheet", conf.SpreadsheetID),
		zap.Bool("dryrun", cmd.dryrun))

	// ... read roster
	scope := SHEETS_READONLY
	if cmd.logRange != "" {
		scope = SHEETS
	}

	google, err := newSheets(ctx, conf.Credentials, scope, conf.Workdir)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	if err := checkWorksheets(ctx, google, conf.SpreadsheetID, cohorts, cmd.logRange); err != nil {
		return err
	}

	rows, err := readCohorts(ctx, google, conf.SpreadsheetID, cohorts, log)
	if err != nil {
		return err
	}

	// ... confirm
	if cmd.purge {
		if cmd.yes {
			run.Purge = true
		} else if ok, err := p.confirm("Do you want to reset the auth database? (for students only)"); err != nil {
			return err
		} else if ok {
			confirmed, err := p.confirm("Are you sure you want to reset the auth database? (for students only)")
			if err != nil {
				return err
			}

			run.Purge = confirmed
		}

		if !run.Purge {
			log.Warn("purge not confirmed - existing student records will be kept")
		}
	}

	if !cmd.yes {
		if ok, err := p.confirm("Are you sure you want to continue?"); err != nil {
			return err
		} else if !ok {
			log.Warn("aborting - cancelled by operator")
			return nil
		}
	}

	// ... sync
	db, err := store.Connect(ctx, conf.DBURI, conf.Database, conf.Collection)
	if err != nil {
		return err
	}

	defer db.Close(ctx)

	var target roster.Store = db
	if cmd.dryrun {
		target = store.NewDryRun(db, log)
	}

	reconciler := roster.Reconciler{
		Store:           target,
		Defaults:        defaults,
		ContinueOnError: cmd.continueOnError,
		Log:             log,
	}

	report, err := run.Sync(ctx, &reconciler, rows)
	if report != nil {
		log.Info("sync complete",
			zap.Int64("purged", report.Purged),
			zap.Int("inserted", report.Inserted),
			zap.Int("updated", report.Updated),
			zap.Int("skipped", report.Skipped),
			zap.Strings("failed", report.Failed))
	}

	if cmd.logRange != "" {
		s := summary{
			timestamp: time.Now(),
			run:       run,
			report:    report,
			dryrun:    cmd.dryrun,
			err:       err,
		}

		if err := appendLog(ctx, google, conf.SpreadsheetID, cmd.logRange, s); err != nil {
			log.Error("unable to update log worksheet", zap.Error(err))
		}
	}

	return err
}
