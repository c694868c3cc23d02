// Package jwt issues and validates the signed auth tokens carried in the
// session cookie. The core only ever sees the resulting user identity.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Binaergewitter/datefinder/internal/model"
)

var (
	ErrNonValidToken    = errors.New("token did not pass validation")
	ErrInvalidClaimType = errors.New("invalid claim type")
)

var tokenSignatureAlg = jwt.SigningMethodHS256

// AuthClaims carry the identity the calendar core consumes.
type AuthClaims struct {
	UserID      int64  `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator signs and verifies auth tokens with a single shared secret.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

func (a *Authenticator) TTL() time.Duration { return a.ttl }

func (a *Authenticator) Generate(user model.User) (string, error) {
	now := time.Now().UTC()
	claims := &AuthClaims{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(tokenSignatureAlg, claims)
	return token.SignedString(a.secret)
}

func (a *Authenticator) Decode(tokenString string) (*AuthClaims, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{tokenSignatureAlg.Alg()}))

	if err != nil {
		return nil, err
	} else if parsedToken == nil || !parsedToken.Valid {
		return nil, ErrNonValidToken
	} else if claims, ok := parsedToken.Claims.(*AuthClaims); ok {
		return claims, nil
	}

	return nil, ErrInvalidClaimType
}
