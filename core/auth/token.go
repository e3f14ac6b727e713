package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/shulehub/shule/core"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	NowFunc = time.Now // mockable
)

// Claims represents the identity claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

// TokenService issues and verifies signed, time-limited identity tokens.
// The signing key and expiration delta are fixed at construction.
type TokenService struct {
	issuer string
	secret []byte
	expiry time.Duration
}

func NewTokenService(conf *core.Config) *TokenService {
	return &TokenService{
		issuer: conf.AppName,
		secret: conf.SecretKey,
		expiry: conf.JWTExpirationDelta,
	}
}

// IssueToken signs a token encoding the subject's id and email, expiring a
// fixed duration from now.
func (ts *TokenService) IssueToken(subjectID, subjectEmail string) (string, error) {
	now := NowFunc()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    ts.issuer,
			Subject:   subjectID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ts.expiry).Unix(),
		},
		Email: subjectEmail,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// VerifyToken checks the token's signature and expiry and returns its claims.
// Any failure, whether a bad signature, a malformed payload or an expired
// token, is ErrInvalidToken.
func (ts *TokenService) VerifyToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
