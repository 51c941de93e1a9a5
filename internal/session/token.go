package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "glamstore_session"

// Claims are the JWT claims carried in the session cookie. Only the opaque
// session ID travels client-side; all state stays in the store.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session cookies.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewTokenManager creates a token manager with the given signing secret and
// session lifetime.
func NewTokenManager(secret string, ttl time.Duration, secure bool) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Sign creates a signed token carrying the session ID.
func (m *TokenManager) Sign(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "glamstore",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signedToken, nil
}

// Verify parses a signed token and returns the session ID it carries.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token claims")
	}

	return claims.SessionID, nil
}

// SetCookie writes the session cookie for the given session ID.
func (m *TokenManager) SetCookie(w http.ResponseWriter, sessionID string) error {
	token, err := m.Sign(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// ReadCookie extracts and verifies the session ID from the request cookie.
// Returns an empty string if the cookie is absent or invalid.
func (m *TokenManager) ReadCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}

	sessionID, err := m.Verify(cookie.Value)
	if err != nil {
		return ""
	}

	return sessionID
}

// ClearCookie expires the session cookie.
func (m *TokenManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
