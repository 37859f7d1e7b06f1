package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	useAccess  = "access"
	useRefresh = "refresh"
)

var ErrWrongTokenUse = errors.New("wrong token use")

// Claims carried by staff access tokens.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
	Use    string    `json:"use"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, userID uuid.UUID, role string) (string, error) {
	return sign(secret, userID, role, useAccess, AccessTokenTTL)
}

// GenerateRefreshToken issues a long-lived token that only /auth/refresh accepts.
// The role is re-read from the users table on refresh.
func GenerateRefreshToken(secret string, userID uuid.UUID) (string, error) {
	return sign(secret, userID, "", useRefresh, RefreshTokenTTL)
}

func sign(secret string, userID uuid.UUID, role, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Use:    use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	return validate(secret, tokenStr, useAccess)
}

func ValidateRefreshToken(secret, tokenStr string) (*Claims, error) {
	return validate(secret, tokenStr, useRefresh)
}

func validate(secret, tokenStr, use string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Use != use {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}
