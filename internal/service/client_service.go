package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const clientTokenIssuer = "unicatalog"

// ClientClaims identifies an anonymous browser. Subject carries the client id.
type ClientClaims struct {
	jwt.RegisteredClaims
}

// ClientService issues and verifies the signed cookie that scopes a
// comparison set to one browser.
type ClientService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewClientService(secret string, ttl time.Duration) *ClientService {
	return &ClientService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (s *ClientService) TTL() time.Duration { return s.ttl }

// Issue mints a new client id and its signed token.
func (s *ClientService) Issue() (clientID, token string, err error) {
	clientID = uuid.NewString()
	now := s.now()

	claims := ClientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    clientTokenIssuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign client token: %w", err)
	}
	return clientID, token, nil
}

// Validate returns the client id carried by token.
func (s *ClientService) Validate(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &ClientClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(clientTokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidClientToken, err)
	}

	claims, ok := parsed.Claims.(*ClientClaims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidClientToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidClientToken
	}
	return claims.Subject, nil
}
