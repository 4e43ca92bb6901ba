package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken     = errors.New("authorization token missing")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenMalformed   = errors.New("invalid token")
	ErrIncompleteClaims = errors.New("invalid token claims")
)

// Claims is the verified payload of a session token. It is the sole source
// of identity for mutating endpoints.
type Claims struct {
	UserID   string  `json:"user_id"`
	Role     string  `json:"role"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
	jwt.RegisteredClaims
}

// Service issues and validates HS256-signed session tokens. The signing key
// is injected at construction and never read from ambient state afterwards.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

func (s *Service) Issue(userID, role, name string, imageURL *string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:   userID,
		Role:     role,
		Name:     name,
		ImageURL: imageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks the signature, expiry and required claims of tokenString.
// An expired token is reported as ErrTokenExpired, never as malformed.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.UserID == "" || claims.Role == "" {
		return nil, ErrIncompleteClaims
	}

	return claims, nil
}
