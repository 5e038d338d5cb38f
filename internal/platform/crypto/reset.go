package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Password-reset links carry a short-lived signed token scoped to a
// single purpose so an access token can never double as a reset token.

const resetPurpose = "password-reset"

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

type resetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateResetToken(secret, email string, ttl time.Duration) (string, error) {
	c := resetClaims{
		Email:   email,
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

// VerifyResetToken returns the email the token was issued for.
func VerifyResetToken(secret, tokenStr string) (string, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &resetClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", ErrInvalidResetToken
	}
	claims, ok := t.Claims.(*resetClaims)
	if !ok || !t.Valid || claims.Purpose != resetPurpose || claims.Email == "" {
		return "", ErrInvalidResetToken
	}
	return claims.Email, nil
}
