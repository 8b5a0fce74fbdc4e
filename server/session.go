package server

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultSessionTTL = 12 * time.Hour
	tokenBytes        = 32
)

var ErrInvalidPassword = errors.New("invalid password")

// SessionGate guards the websocket feed behind a single shared password.
// With no password configured the gate is open and tokens are not required.
type SessionGate struct {
	mu sync.Mutex

	passwordHash []byte
	sessionTTL   time.Duration
	sessions     map[string]time.Time // token -> expiry
}

func NewSessionGate(password string) (*SessionGate, error) {
	gate := &SessionGate{
		sessionTTL: defaultSessionTTL,
		sessions:   make(map[string]time.Time),
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		gate.passwordHash = hash
	}
	return gate, nil
}

func NewSessionGateFromEnv() (*SessionGate, error) {
	return NewSessionGate(strings.TrimSpace(os.Getenv("SERVER_PASSWORD")))
}

func (g *SessionGate) Enabled() bool {
	return len(g.passwordHash) > 0
}

// Authenticate checks the shared password and issues a session token.
func (g *SessionGate) Authenticate(password string) (string, error) {
	if !g.Enabled() {
		return "", nil
	}
	if bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) != nil {
		return "", ErrInvalidPassword
	}

	token := mustToken()
	g.mu.Lock()
	g.sessions[token] = time.Now().Add(g.sessionTTL)
	g.mu.Unlock()
	return token, nil
}

// Resolve validates a token and refreshes its expiry.
func (g *SessionGate) Resolve(token string) bool {
	if !g.Enabled() {
		return true
	}
	if token == "" {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	expiry, ok := g.sessions[token]
	if !ok {
		return false
	}
	now := time.Now()
	if !now.Before(expiry) {
		delete(g.sessions, token)
		return false
	}
	g.sessions[token] = now.Add(g.sessionTTL)
	return true
}

func (g *SessionGate) Logout(token string) {
	if token == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, token)
}

func mustToken() string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
