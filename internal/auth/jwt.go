package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const viewSessionIssuer = "group-order-client"

// Claims identify a browser's view-session. The backend login lives in the
// view-session's own cookie jar, never in this token.
type Claims struct {
	jwt.RegisteredClaims
}

func IssueViewToken(sessionID, secret string, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", errors.New("session id required")
	}
	if secret == "" {
		return "", errors.New("secret required")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    viewSessionIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyViewToken returns the view-session id carried by a valid token.
func VerifyViewToken(tokenString, secret string) (string, error) {
	if tokenString == "" {
		return "", errors.New("token required")
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(viewSessionIssuer),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no session")
	}
	return claims.Subject, nil
}
