// Package token mints and verifies the session tokens handed out at login.
// A token is only half of a valid session: it must also match the one
// currently stored on the user row, so issuing a new token (or logout)
// invalidates all earlier ones.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Lifetime of a session token.
const Lifetime = 3600 * time.Second

func Issue(secret, userID, terminal string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"terminal": terminal,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(Lifetime).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify checks signature and expiry and returns the subject user id.
func Verify(secret, tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	if !tok.Valid {
		return "", errors.New("invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub missing in claims")
	}
	return sub, nil
}
