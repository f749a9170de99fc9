package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims carries the authenticated subject and its role labels.
type Claims struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Provider issues and resolves signed identity tokens. Tokens are stateless:
// there is no server-side revocation list, expiry is the only time control.
type Provider struct {
	secret []byte
	expiry time.Duration
}

func NewProvider(secret string, expireHours int) *Provider {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &Provider{
		secret: []byte(secret),
		expiry: time.Duration(expireHours) * time.Hour,
	}
}

// Issue produces a signed HS256 token carrying the subject and role claims.
func (p *Provider) Issue(userID string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// ResolveSubject verifies signature and expiry and returns the user id the
// token was issued for.
func (p *Provider) ResolveSubject(tokenString string) (string, error) {
	claims, err := p.Resolve(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Resolve verifies the token and returns its full claims.
func (p *Provider) Resolve(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
