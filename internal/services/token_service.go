package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const claimUserID = "userId"

// TokenService issues and validates HS512-signed bearer tokens. Tokens carry
// the account id as the userId claim and the email as subject.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService creates a TokenService signing with secret. Issued tokens
// expire after lifetime.
func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for issuing and expiry checks.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

// Issue mints a signed token for the account.
func (s *TokenService) Issue(userID, email string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		claimUserID: userID,
		"sub":       email,
		"iat":       now.Unix(),
		"exp":       now.Add(s.lifetime).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Validate reports whether tokenString is well formed, correctly signed and
// unexpired. It never panics or returns an error.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.parse(tokenString)
	return err == nil
}

// UserID returns the account id carried by a token. Callers validate first.
func (s *TokenService) UserID(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	userID, ok := claims[claimUserID].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid token: missing %s claim", claimUserID)
	}
	return userID, nil
}

// Email returns the subject of a token.
func (s *TokenService) Email(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	email, _ := claims["sub"].(string)
	return email, nil
}

func (s *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	parser := &jwt.Parser{
		ValidMethods: []string{jwt.SigningMethodHS512.Alg()},
		// expiry is checked below against s.now
		SkipClaimsValidation: true,
	}
	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, fmt.Errorf("invalid token: token is expired")
	}
	return claims, nil
}
