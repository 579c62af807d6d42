package roster

import (
	"fmt"
)

// Tier selects the admissibility rules applied to a row. It is derived from the row's own Year,
// which is not necessarily the year of the worksheet the row was read from.
type Tier int

const (
	Lower Tier = iota
	Upper
)

// Rows with a Year from upperYear up are filtered with the Upper rules.
const upperYear = 10

func TierOf(year int) Tier {
	if year < upperYear {
		return Lower
	}

	return Upper
}

func (t Tier) String() string {
	switch t {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Rule reports whether a column value disqualifies a row.
type Rule func(v any) bool

// Filtered is the result of Filter: the admissible rows in their original order and their count.
type Filtered struct {
	Records []Row
	Count   int
}

var placeholders = []any{"#N/A", ""}

// Guarded fields are checked in this order. A field that is not in a tier's rule set is not
// checked for that tier.
var guarded = []string{"Email", "Status", "English"}

var rules = map[Tier]map[string]Rule{
	Lower: {
		"Email":   oneOf("#N/A", ""),
		"Status":  oneOf("New", "Waiting"),
		"English": oneOf("#N/A", "", 0),
	},
	Upper: {
		"Email":  oneOf("#N/A", ""),
		"Status": oneOf("New", "Waiting"),
	},
}

// Filter discards unset and placeholder rows. Rows are neither modified nor reordered.
func Filter(rows []Row) Filtered {
	records := []Row{}

	for _, row := range rows {
		if ok, _ := Admissible(row.Values); ok {
			records = append(records, row)
		}
	}

	return Filtered{
		Records: records,
		Count:   len(records),
	}
}

// Admissible applies the rules to a single record, returning the name of the first field that
// rejected it.
func Admissible(record RawRecord) (bool, string) {
	year, ok := record.Get("Year")
	if !ok || year == nil || oneOf(placeholders...)(year) {
		return false, "Year"
	}

	y, err := record.Int("Year")
	if err != nil {
		return false, "Year"
	}

	tier := rules[TierOf(y)]
	for _, field := range guarded {
		rule, ok := tier[field]
		if !ok {
			continue
		}

		// absent columns are never rejected by a rule
		if v, ok := record.Get(field); ok && rule(v) {
			return false, field
		}
	}

	return true, ""
}

func oneOf(values ...any) Rule {
	return func(v any) bool {
		for _, x := range values {
			if equal(v, x) {
				return true
			}
		}

		return false
	}
}

// equal compares strings after trimming (as they are stored) and numbers by value, so a cell
// holding 0.0 matches 0 but a cell holding the text "0" does not.
func equal(v, x any) bool {
	a, aok := number(v)
	b, bok := number(x)

	switch {
	case aok && bok:
		return a == b

	case aok || bok:
		return false

	default:
		s, sok := v.(string)
		t, tok := x.(string)

		return sok && tok && clean(s) == clean(t)
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
