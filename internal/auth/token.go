package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoSubject    = errors.New("token subject is required")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the verified content of an access token.
type Claims struct {
	UserID    uuid.UUID
	IsAdmin   bool
	TokenID   uuid.UUID
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 access tokens. The secret is fixed
// at construction and never mutated, so a single Issuer is safe to
// share across requests.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *Issuer) Issue(userID uuid.UUID, isAdmin bool) (string, error) {
	if userID == uuid.Nil {
		return "", ErrNoSubject
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"adm": isAdmin,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	sub, _ := claims.GetSubject()
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenInvalid
	}

	isAdmin, _ := claims["adm"].(bool)

	var tokenID uuid.UUID
	if jti, ok := claims["jti"].(string); ok {
		tokenID, _ = uuid.Parse(jti)
	}

	return &Claims{
		UserID:    userID,
		IsAdmin:   isAdmin,
		TokenID:   tokenID,
		ExpiresAt: exp.Time,
	}, nil
}
