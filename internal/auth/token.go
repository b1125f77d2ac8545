package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any unusable token:
// bad signature, wrong algorithm, malformed input or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload carried by an issued token.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	issuer     string
	signingKey []byte
	tokenTTL   time.Duration
}

func NewTokenIssuer(issuer string, signingKey []byte, tokenTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		issuer:     issuer,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
	}
}

// Issue signs an HS256 token for the given user. The expiry is fixed
// at the issuer's TTL; there is no refresh mechanism, an expired token
// forces a new login.
func (i *TokenIssuer) Issue(userID, name string) (string, error) {
	now := time.Now()
	unsignedToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.tokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	token, err := unsignedToken.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates token and returns its claims,
// or ErrInvalidToken wrapping the cause.
func (i *TokenIssuer) Verify(token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return i.signingKey, nil
		},
		jwt.WithIssuer(i.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
