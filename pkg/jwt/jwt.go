package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a bearer token. IsAdmin travels in the token so the
// middleware does not hit the database on every request.
type Claims struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

func GenerateToken(secret []byte, userID uint, email string, isAdmin bool, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      email,
		"email":    email,
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(expiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user_id claim")
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid email claim")
	}
	isAdmin, _ := mapClaims["is_admin"].(bool)

	return &Claims{
		UserID:  uint(userID),
		Email:   email,
		IsAdmin: isAdmin,
	}, nil
}
