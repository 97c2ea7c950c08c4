package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const FlashCookieName = "flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

// FlashSigner signs flash messages so they can travel in a cookie across a
// redirect without the client being able to forge them.
type FlashSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewFlashSigner(secret string) *FlashSigner {
	return &FlashSigner{secret: []byte(secret), ttl: 5 * time.Minute}
}

func (f *FlashSigner) Encode(flashes ...Flash) (string, error) {
	now := time.Now()
	claims := &flashClaims{
		Flashes: flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(f.secret)
}

func (f *FlashSigner) Decode(tokenStr string) ([]Flash, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &flashClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return f.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*flashClaims); ok && token.Valid {
		return claims.Flashes, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
