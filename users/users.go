package users

import "golang.org/x/crypto/bcrypt"

// StoredUser is a credential record in the static registry. Records are
// provisioned out-of-band (see cmd/hashpass) and never mutated at runtime.
type StoredUser struct {
	Email        string `json:"email"`
	PasswordHash string `json:"hash"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
