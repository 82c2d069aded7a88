package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType tags a JWT with the flow it belongs to. Middleware rejects
// tokens whose type does not match the route group.
type TokenType string

const (
	TokenAccess        TokenType = "access"
	TokenRefresh       TokenType = "refresh"
	TokenPasswordReset TokenType = "password_reset"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongType    = errors.New("wrong token type")
)

// Claims is the decoded payload of a platform token.
type Claims struct {
	UserID int64
	Type   TokenType
}

// Manager issues and validates HS256 tokens for the access, refresh and
// password-reset flows.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL, resetTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}
}

func (m *Manager) ttlFor(t TokenType) time.Duration {
	switch t {
	case TokenRefresh:
		return m.refreshTTL
	case TokenPasswordReset:
		return m.resetTTL
	default:
		return m.accessTTL
	}
}

// Generate signs a token of the given type for the user.
func (m *Manager) Generate(userID int64, t TokenType) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    string(t),
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttlFor(t)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GeneratePair issues a fresh access+refresh pair.
func (m *Manager) GeneratePair(userID int64) (access, refresh string, err error) {
	access, err = m.Generate(userID, TokenAccess)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.Generate(userID, TokenRefresh)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Parse validates the signature and expiry and returns the claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	tokenType, ok := mapClaims["type"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID: int64(userID),
		Type:   TokenType(tokenType),
	}, nil
}
