package users

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Registry is the read-only user store backing login. It is loaded once at
// startup; request handling only ever reads it, so no locking is needed.
type Registry struct {
	byEmail map[string]StoredUser
}

// NewRegistry builds a registry from records, normalizing emails to lower
// case. Later duplicates win, matching a JSON file edited by hand.
func NewRegistry(records []StoredUser) *Registry {
	byEmail := make(map[string]StoredUser, len(records))
	for _, rec := range records {
		email := strings.ToLower(strings.TrimSpace(rec.Email))
		if email == "" {
			continue
		}
		byEmail[email] = StoredUser{Email: email, PasswordHash: rec.PasswordHash}
	}
	return &Registry{byEmail: byEmail}
}

// LoadRegistry reads the JSON user file (an array of {email, hash} records).
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "[LoadRegistry] open users file")
	}
	defer f.Close()
	return ReadRegistry(f)
}

// ReadRegistry decodes registry records from r.
func ReadRegistry(r io.Reader) (*Registry, error) {
	var records []StoredUser
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "[ReadRegistry] decode users")
	}
	return NewRegistry(records), nil
}

// FindByEmail looks up a user by case-insensitive email match.
func (reg *Registry) FindByEmail(email string) (StoredUser, bool) {
	u, ok := reg.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return u, ok
}

// Len reports the number of provisioned users.
func (reg *Registry) Len() int {
	return len(reg.byEmail)
}
