package util

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_token"

// In-memory session store: token -> user id. Sessions do not survive a
// restart; members just log in again.
var (
	sessions = make(map[string]string)
	mu       sync.RWMutex
)

// GenerateSessionToken creates a cryptographically secure random token.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateSession registers a new session for userID and returns its token.
func CreateSession(userID string) (string, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", err
	}
	mu.Lock()
	sessions[token] = userID
	mu.Unlock()
	return token, nil
}

// GetUserIDFromSession resolves a token to a user id, or "" if unknown.
func GetUserIDFromSession(token string) string {
	mu.RLock()
	userID := sessions[token]
	mu.RUnlock()
	return userID
}

// DeleteSession forgets a session token.
func DeleteSession(token string) {
	mu.Lock()
	delete(sessions, token)
	mu.Unlock()
}

// GetUserIDFromRequest extracts the session's user id from the request
// cookie. Missing or unknown cookies return "" without an error; the auth
// middleware turns that into a 401.
func GetUserIDFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		if err == http.ErrNoCookie {
			return "", nil
		}
		return "", err
	}
	return GetUserIDFromSession(cookie.Value), nil
}
