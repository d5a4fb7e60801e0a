package helper

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

// GenerateNumericCode menghasilkan kode angka n digit tanpa nol di depan (mis. 6 digit: 100000–999999).
func GenerateNumericCode(n int) string {
	if n <= 0 {
		n = 6
	}
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n-1)), nil)
	span := new(big.Int).Sub(new(big.Int).Mul(low, big.NewInt(10)), low)
	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		// crypto/rand gagal: pakai nilai minimum, tetap n digit
		return low.String()
	}
	return new(big.Int).Add(v, low).String()
}

// IPHashSalt dipakai bersama oleh analytics & komentar situs
const IPHashSalt = "itqaan_salt"

// HashIP: sha256(ip + salt) dipotong 16 hex char, agar IP mentah tidak tersimpan.
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(ip) + salt))
	return hex.EncodeToString(sum[:])[:16]
}

// NormalizeEmail: trim + lowercase
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StrPtr: "" -> nil
func StrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref aman untuk *string
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
