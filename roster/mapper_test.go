package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func TestMap(t *testing.T) {
	track := "Med"
	english := "EP"

	expected := UserRecord{
		Profile: Profile{
			FirstName: "Jane",
			LastName:  "Doe",
			NickName:  "JD",
			Email:     "jane@x.com",
			Year:      12,
			Room:      "12A",
			Track:     &track,
			Elective: Elective{
				English:  &english,
				Activity: "Creative Drama",
			},
			Type:     "student",
			LastSync: now,
			SyncedBy: "Ms Smith",
		},
		IssuedID: "N00000",
	}

	r := Row{
		Sheet: "Year 12 Med",
		Index: 7,
		Values: RawRecord{
			"Name":     "  Jane   Doe ",
			"Nickname": "JD",
			"Email":    "jane@x.com",
			"Year":     float64(12),
			"Room":     "12A",
			"Track":    "Med",
			"English":  "EP",
			"Status":   "Active",
		},
	}

	record, err := Map(r, "Ms Smith", now, "N00000")
	require.NoError(t, err)
	assert.Equal(t, expected, record)
}

func TestMapWithoutOptionalFields(t *testing.T) {
	r := Row{
		Sheet: "Year 9 Room",
		Index: 2,
		Values: RawRecord{
			"Name":  "Jane Doe Smith",
			"Email": "jane@x.com",
			"Year":  9,
			"Room":  float64(3),
		},
	}

	record, err := Map(r, "Ms Smith", now, "N00000")
	require.NoError(t, err)

	assert.Equal(t, "Jane", record.FirstName)
	assert.Equal(t, "Doe", record.LastName)
	assert.Equal(t, "", record.NickName)
	assert.Equal(t, "3", record.Room)
	assert.Nil(t, record.Track)
	assert.Nil(t, record.Elective.English)
	assert.Equal(t, "Creative Drama", record.Elective.Activity)
	assert.Equal(t, "student", record.Type)
}

func TestMapWithMalformedName(t *testing.T) {
	for _, name := range []any{"Bad", "", "   ", nil} {
		r := Row{
			Sheet:  "Year 9 Room",
			Index:  5,
			Values: RawRecord{"Name": name, "Email": "bad@x.com", "Year": 9},
		}

		_, err := Map(r, "Ms Smith", now, "N00000")

		var malformed *MalformedNameError
		if !errors.As(err, &malformed) {
			t.Fatalf("Expected MalformedNameError for name %#v, got %v", name, err)
		}

		assert.Equal(t, "Year 9 Room", malformed.Sheet)
		assert.Equal(t, 5, malformed.Row)
	}
}

func TestMapWithInvalidYear(t *testing.T) {
	r := Row{
		Sheet:  "Year 9 Room",
		Index:  5,
		Values: RawRecord{"Name": "Jane Doe", "Email": "jane@x.com", "Year": "#REF!"},
	}

	_, err := Map(r, "Ms Smith", now, "N00000")

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "Year", malformed.Field)
}
