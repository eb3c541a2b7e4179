package services

import (
	"fmt"
	"strings"
	"time"

	"katalog/internal/apperrors"

	"github.com/dgrijalva/jwt-go"
)

// AdminRole is the role claim required for mutating operations.
const AdminRole = "admin"

// AuthService verifies bearer credentials against the shared signing secret
// and extracts the caller's role. The catalog never stores credentials
// itself; tokens are minted by the identity service and only checked here.
type AuthService struct {
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which minted tokens are valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// GenerateToken mints a signed token carrying the subject and role claims.
// Used by operators and tests; request handling only ever verifies.
func (s *AuthService) GenerateToken(userID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(s.tokenDurat).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning its claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.InvalidCredential("Invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.InvalidCredential("Invalid or expired token", nil)
	}
	return claims, nil
}

// AuthorizeAdmin runs the full guard against a raw Authorization header and
// returns the subject identifier of the authorized principal. It is a pure
// check: nothing is mutated and rejected requests never reach the store.
func (s *AuthService) AuthorizeAdmin(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.Unauthenticated("Token is missing")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperrors.MalformedCredential("Invalid token format")
	}

	claims, err := s.ValidateToken(parts[1])
	if err != nil {
		return "", err
	}

	role, _ := claims["role"].(string)
	if role != AdminRole {
		return "", apperrors.InsufficientRole("Authorization denied")
	}

	userID, _ := claims["id"].(string)
	return userID, nil
}
