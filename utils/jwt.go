package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// BookerClaims is what the sign-in layer puts in the booker's session token
// after a GOV.UK One Login callback.
type BookerClaims struct {
	jwt.StandardClaims
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	SessionID   string `json:"sid"`
}

// GenerateBookerToken creates a signed HS256 session token for a booker.
func GenerateBookerToken(secret []byte, sub, email, phone, sessionID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := BookerClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   sub,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
		Email:       email,
		PhoneNumber: phone,
		SessionID:   sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseBookerToken validates the token and returns its claims.
func ParseBookerToken(secret []byte, tokenString string) (*BookerClaims, error) {
	claims := &BookerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	if claims.SessionID == "" {
		return nil, errors.New("token does not contain a session id")
	}
	return claims, nil
}
