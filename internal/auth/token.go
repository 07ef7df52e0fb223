package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CreateToken signs an HS256 JWT asserting the username and user type.
// Issued after signup and after a successful login; the API itself only
// checks it on routes behind the JWT middleware.
func CreateToken(secret []byte, username, userType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username":  username,
		"user_type": userType,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a signed token and returns the username and user type
// it asserts.
func ParseToken(secret []byte, tokenStr string) (username, userType string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	username, _ = claims["username"].(string)
	userType, _ = claims["user_type"].(string)
	if username == "" {
		return "", "", errors.New("token missing username")
	}
	return username, userType, nil
}
