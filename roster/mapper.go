package roster

import (
	"strings"
	"time"
)

const (
	// TypeStudent scopes user documents managed by the sync.
	TypeStudent = "student"

	// Activity is the placeholder activity elective assigned to every student.
	Activity = "Creative Drama"
)

type Elective struct {
	English  *string `bson:"english"`
	Activity string  `bson:"activity"`
}

// Profile is the part of a user document that is overwritten on every sync.
type Profile struct {
	FirstName string    `bson:"firstName"`
	LastName  string    `bson:"lastName"`
	NickName  string    `bson:"nickName"`
	Email     string    `bson:"email"`
	Year      int       `bson:"year"`
	Room      string    `bson:"room"`
	Track     *string   `bson:"track"`
	Elective  Elective  `bson:"elective"`
	Type      string    `bson:"type"`
	LastSync  time.Time `bson:"lastSync"`
	SyncedBy  string    `bson:"syncedBy"`
}

// UserRecord is a mapped roster row. IssuedID is only ever written when the user is first
// created.
type UserRecord struct {
	Profile  `bson:",inline"`
	IssuedID string `bson:"issuedId"`
}

// NewUser is the document inserted for an email that is not yet in the store.
type NewUser struct {
	UserRecord `bson:",inline"`
	Password   string `bson:"password"`
}

// Map converts an admissible row to a user record.
func Map(row Row, operator string, now time.Time, issuedID string) (UserRecord, error) {
	r := row.Values

	name := strings.Fields(r.String("Name"))
	if len(name) < 2 {
		return UserRecord{}, &MalformedNameError{
			Sheet: row.Sheet,
			Row:   row.Index,
			Name:  r.String("Name"),
		}
	}

	year, err := r.Int("Year")
	if err != nil {
		return UserRecord{}, &MalformedRecordError{
			Sheet:  row.Sheet,
			Row:    row.Index,
			Field:  "Year",
			Reason: err.Error(),
		}
	}

	return UserRecord{
		Profile: Profile{
			FirstName: name[0],
			LastName:  name[1],
			NickName:  r.String("Nickname"),
			Email:     r.String("Email"),
			Year:      year,
			Room:      r.String("Room"),
			Track:     optional(r, "Track"),
			Elective: Elective{
				English:  optional(r, "English"),
				Activity: Activity,
			},
			Type:     TypeStudent,
			LastSync: now,
			SyncedBy: operator,
		},
		IssuedID: issuedID,
	}, nil
}

func optional(r RawRecord, field string) *string {
	if v, ok := r.Get(field); ok && v != nil {
		s := stringify(v)
		return &s
	}

	return nil
}
