package commands

import (
	"strings"
	"testing"

	"github.com/schoolops/student-sync/roster"
)

func TestRowsToTSV(t *testing.T) {
	expected := `Sheet	Row	Name	Email	Year	Room	Status	Notes
Year 9 Room	2	Jane Doe	jane@x.com	9	A	Active	
Year 9 Room	5	John Roe	john@x.com	9	101	Active	transfer
`

	rows := []roster.Row{
		{
			Sheet:  "Year 9 Room",
			Index:  2,
			Values: roster.RawRecord{"Name": "Jane Doe", "Email": "jane@x.com", "Year": float64(9), "Room": "A", "Status": "Active", "Notes": ""},
		},
		{
			Sheet:  "Year 9 Room",
			Index:  5,
			Values: roster.RawRecord{"Name": "John Roe", "Email": "john@x.com", "Year": float64(9), "Room": float64(101), "Status": "Active", "Notes": "transfer"},
		},
	}

	var f strings.Builder
	if err := rowsToTSV(&f, rows); err != nil {
		t.Fatalf("Unexpected error returned from rowsToTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestRowsToTSVWithNoRows(t *testing.T) {
	expected := "Sheet\tRow\n"

	var f strings.Builder
	if err := rowsToTSV(&f, nil); err != nil {
		t.Fatalf("Unexpected error returned from rowsToTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}
