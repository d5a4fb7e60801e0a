package helpers

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validasi Email (regex simple)
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

func IsPasswordLongEnough(pw string) bool {
	return len([]rune(pw)) >= MinPasswordLen
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
