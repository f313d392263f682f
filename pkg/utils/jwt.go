package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// TokenEmailKey is the echo context key holding the verified principal email.
const TokenEmailKey = "tokenEmail"

func CreateJWTToken(email string, jwtSecretKey string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["email"] = email
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// JWTVerifier checks HS256 bearer tokens and yields the email claim.
type JWTVerifier struct {
	secret []byte
}

func CreateJWTVerifier(jwtSecretKey string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(jwtSecretKey)}
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", errs.ErrNotLoggedIn
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errs.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("%w: missing email claim", errs.ErrInvalidToken)
	}

	return email, nil
}

func ExtractTokenEmail(c echo.Context) string {
	email, _ := c.Get(TokenEmailKey).(string)
	return email
}
