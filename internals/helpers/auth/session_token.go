package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	SessionTTL = 30 * 24 * time.Hour
	ExpirySkew = 30 * time.Second
)

var (
	ErrMissingSecret = errors.New("jwt secret is empty")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")
)

// SessionClaims isi token sesi: sub, email, role, name (+ iat/exp)
type SessionClaims struct {
	UserID uuid.UUID
	Email  string
	Role   string
	Name   string
	Exp    time.Time
}

// SignSessionToken membuat JWT HS256 berlaku SessionTTL sejak now.
func SignSessionToken(secret string, c SessionClaims, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	exp := now.Add(SessionTTL)
	claims := jwt.MapClaims{
		"sub":   c.UserID.String(),
		"email": c.Email,
		"role":  c.Role,
		"name":  c.Name,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		// jti bikin token unik walau di-issue pada detik yang sama
		"jti": uuid.NewString(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// ParseSessionToken verifikasi signature (HS256 saja) lalu exp dengan skew.
func ParseSessionToken(secret, raw string, now time.Time) (*SessionClaims, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	exp, err := claimUnix(claims, "exp")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if now.After(exp.Add(ExpirySkew)) {
		return nil, ErrTokenExpired
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(strings.TrimSpace(sub))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sub", ErrTokenInvalid)
	}
	out := &SessionClaims{UserID: userID, Exp: exp}
	out.Email, _ = claims["email"].(string)
	out.Role, _ = claims["role"].(string)
	out.Name, _ = claims["name"].(string)
	return out, nil
}

// TokenExpiry baca exp tanpa verifikasi signature (untuk TTL blacklist).
func TokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claimUnix(claims, "exp")
	if err != nil {
		return time.Time{}, false
	}
	return exp, true
}

func claimUnix(claims jwt.MapClaims, key string) (time.Time, error) {
	switch v := claims[key].(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC(), nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case nil:
		return time.Time{}, fmt.Errorf("token has no %s", key)
	default:
		return time.Time{}, fmt.Errorf("invalid %s type %T", key, v)
	}
}
