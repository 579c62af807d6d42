package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/schoolops/student-sync/config"
	"github.com/schoolops/student-sync/logging"
	"github.com/schoolops/student-sync/roster"
)

const APP = "student-sync"

type Options struct {
	Debug bool
}

// command holds the options common to every command that reads the roster spreadsheet.
type command struct {
	config      string
	workdir     string
	credentials string
	url         string
	cohorts     string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.config, "config", c.config, fmt.Sprintf("Configuration file path. Defaults to ./config.json or %s", DEFAULT_CONFIG))
	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the Google 'credentials.json' file")
	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL. Defaults to the SPREADSHEET_ID in the configuration file")
	flagset.StringVar(&c.cohorts, "cohorts", c.cohorts, "Comma separated list of cohorts e.g. 'Year 9,Year 12 Med'. Prompts for a selection if not provided")

	return flagset
}

// setup loads the configuration, applying the command line overrides, and builds the logger.
func (c *command) setup(args []any) (context.Context, *config.Config, *zap.Logger, error) {
	ctx := context.Background()
	options := Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = *v
		}
	}

	c.debug = c.debug || options.Debug

	file := c.config
	if file == "" {
		file = config.DefaultConfig
		if _, err := os.Stat(file); err != nil {
			file = DEFAULT_CONFIG
		}
	}

	conf, err := config.Load(file)
	if err != nil {
		return nil, nil, nil, err
	}

	if strings.TrimSpace(c.url) != "" {
		id, err := spreadsheetID(c.url)
		if err != nil {
			return nil, nil, nil, err
		}

		conf.SpreadsheetID = id
	}

	if c.workdir != "" {
		conf.Workdir = c.workdir
	} else if conf.Workdir == "" {
		conf.Workdir = DEFAULT_WORKDIR
	}

	if c.credentials != "" {
		conf.Credentials = c.credentials
	} else if conf.Credentials == "" {
		conf.Credentials = filepath.Join(conf.Workdir, ".google", "credentials.json")
	}

	log, err := logging.New(conf.Log, c.debug)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to initialise logging (%v)", err)
	}

	return ctx, conf, log, nil
}

// selection parses --cohorts, or asks the operator to pick from the standard cohorts if it was
// not given and there is a terminal to ask on.
func (c *command) selection(p *prompt) ([]roster.Cohort, error) {
	labels := strings.Split(c.cohorts, ",")

	if strings.TrimSpace(c.cohorts) == "" && p != nil && p.interactive {
		chosen, err := p.choose("Which cohorts?", roster.Choices)
		if err != nil {
			return nil, err
		}

		labels = chosen
	}

	return roster.SelectCohorts(labels)
}

func spreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func getSpreadsheet(google *sheets.Service, id string, ctx context.Context) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%v)", err)
	}

	return spreadsheet, nil
}

func getSheet(spreadsheet *sheets.Spreadsheet, area string) (*sheets.Sheet, error) {
	name := area
	if match := regexp.MustCompile(`(.+?)!.*`).FindStringSubmatch(area); len(match) > 1 {
		name = match[1]
	}

	name = strings.Trim(strings.TrimSpace(name), "'")
	for _, sheet := range spreadsheet.Sheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), name) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet for '%s'", area)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-18s %s\n", f.Name, f.Usage)
	})
}
