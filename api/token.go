package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret    []byte
	jwtExpiresIn time.Duration
)

// TokenInit Initialize JWT configuration
func TokenInit(secret string, expiresIn time.Duration) error {
	if secret == "" {
		return errors.New("jwt secret must not be empty")
	}
	if len(secret) < 32 {
		return errors.New("jwt secret must be at least 32 characters")
	}
	if expiresIn <= 0 {
		expiresIn = 12 * time.Hour
	}

	jwtSecret = []byte(secret)
	jwtExpiresIn = expiresIn
	return nil
}

// GenerateAdminToken 为通过密钥认证的后台会话签发 JWT
func GenerateAdminToken() (token string, expiry time.Time, err error) {
	if len(jwtSecret) == 0 {
		err = errors.New("JWT secret is not initialized")
		return
	}

	expiry = time.Now().Add(jwtExpiresIn)
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  expiry.Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		err = fmt.Errorf("failed to generate admin token: %w", err)
		token = ""
		expiry = time.Time{}
		return
	}

	return
}

// Parse Parse and validate JWT token
func Parse(tokenString string) (jwt.MapClaims, error) {
	if len(jwtSecret) == 0 {
		return nil, errors.New("JWT secret is not initialized")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
