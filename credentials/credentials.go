package credentials

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/schoolops/student-sync/roster"
)

// Placeholders given to newly created students until real credentials are issued.
const (
	DefaultIssuedID     = "N00000"
	DefaultPasswordHash = "$2b$12$Br3v95wIpDGgaFyttKheyuorkTuH8OE6IaBflcoAIHAmBs/hSem/S"
)

const cost = 12

// NewDefaults returns the credential defaults for new students. If an initial password is
// supplied it is hashed with bcrypt, otherwise the placeholder hash is used.
func NewDefaults(password string) (roster.Defaults, error) {
	defaults := roster.Defaults{
		PasswordHash: DefaultPasswordHash,
		IssuedID:     DefaultIssuedID,
	}

	if strings.TrimSpace(password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return defaults, fmt.Errorf("unable to hash initial password (%v)", err)
		}

		defaults.PasswordHash = string(hash)
	}

	return defaults, nil
}
