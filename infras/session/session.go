package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"tick/config"
	"tick/shared/constant"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session has expired")
	ErrInvalidClaim = errors.New("invalid session claim")
)

// Claims carries the authenticated user identity across requests.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	TokenID  string `json:"token_id"`
	jwt.RegisteredClaims
}

// Sessions issues and resolves signed session tokens. The signing secret is
// process-wide configuration set at startup and never rotated at runtime.
type Sessions interface {
	Issue(userID int64, username string) (string, error)
	Parse(tokenString string) (*Claims, error)
	Cookie(token string) *http.Cookie
	ClearCookie() *http.Cookie
	CookieName() string
}

type sessionImpl struct {
	config *config.Config
}

// New creates a new session token service
func New(cfg *config.Config) Sessions {
	return &sessionImpl{
		config: cfg,
	}
}

// Issue signs a new session token for the given user.
func (s *sessionImpl) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.Session.ExpireMin) * time.Minute)
	tokenID := uuid.New().String()

	claims := Claims{
		UserID:   userID,
		Username: username,
		TokenID:  tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        tokenID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.config.Session.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// Parse validates a session token and returns its claims. Any tampered,
// malformed, or expired token resolves to an error, never to a partial claim.
func (s *sessionImpl) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Session.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// Cookie wraps a signed token in the session cookie.
func (s *sessionImpl) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.CookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   s.config.Session.ExpireMin * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.Server.Env == constant.ServerEnvProduction,
	}
}

// ClearCookie expires the session cookie immediately.
func (s *sessionImpl) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.Server.Env == constant.ServerEnvProduction,
	}
}

// CookieName returns the configured session cookie name.
func (s *sessionImpl) CookieName() string {
	if s.config.Session.CookieName != "" {
		return s.config.Session.CookieName
	}

	return constant.DefaultSessionCookieName
}
