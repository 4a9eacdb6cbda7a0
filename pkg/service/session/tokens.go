// Package session holds per-session state for the MCP server.
package session

import "sync"

// TokenStore keeps the credential set via set_api_token for each MCP
// session. Entries are scoped strictly to one session id; concurrent
// sessions never observe each other's token.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]string)}
}

// Set records the credential for a session.
func (s *TokenStore) Set(sessionID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sessionID] = token
}

// Get returns the credential for a session, if one was set.
func (s *TokenStore) Get(sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[sessionID]
	return token, ok
}

// Delete removes a session's credential. Called when the session ends.
func (s *TokenStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sessionID)
}
