package utils

import (
	"errors"
	"time"

	"membership/config"

	"github.com/golang-jwt/jwt"
)

// Read the signing secret lazily so config has been loaded first.
// Fallback to a default (not recommended in production).
func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "pirate-admin"
	}
	return []byte(secret)
}

// GenerateAdminToken creates a signed JWT for an authenticated admin user.
// The token expires after the specified duration.
func GenerateAdminToken(email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   email,
		"admin": true,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// IsAdminToken reports whether the token carries a valid admin claim.
func IsAdminToken(tokenString string) bool {
	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	admin, ok := claims["admin"].(bool)
	return ok && admin
}
