package credentials

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Store is the process-wide holder of bearer credentials: the access
// token, the refresh token and the authentication endpoint URL. It
// performs no validation of its own - token inspection lives elsewhere.
//
// Tokens are written through to the Repo on every set and lazily read
// back on first access, so a restarted client resumes the previous
// session. The endpoint URL is configuration, not a secret, and stays in
// memory only.
type Store struct {
	mu           sync.RWMutex
	repo         Repo
	accessToken  string
	refreshToken string
	authEndpoint string
	loaded       bool
}

// NewStore creates a Store backed by the given durable repo.
func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// AccessToken returns the current access token, reading the durable copy
// if the in-memory one has not been initialized yet.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.accessToken
}

// SetAccessToken replaces the access token and persists it.
func (s *Store) SetAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if err := s.repo.Set(KeyAccessToken, token); err != nil {
		return errors.Wrap(err, "persist access token")
	}
	s.accessToken = token
	return nil
}

// RefreshToken returns the current refresh token, reading the durable
// copy if the in-memory one has not been initialized yet.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.refreshToken
}

// SetRefreshToken replaces the refresh token and persists it.
func (s *Store) SetRefreshToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if err := s.repo.Set(KeyRefreshToken, token); err != nil {
		return errors.Wrap(err, "persist refresh token")
	}
	s.refreshToken = token
	return nil
}

// AuthEndpoint returns the authentication service URL.
func (s *Store) AuthEndpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authEndpoint
}

// SetAuthEndpoint sets the authentication service URL.
func (s *Store) SetAuthEndpoint(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authEndpoint = url
}

// Clear wipes both tokens from memory and from the durable repo. The
// write lock is held across the whole operation, so a concurrent reader
// sees either both tokens or neither.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = ""
	s.refreshToken = ""
	s.loaded = true // do not resurrect cleared tokens from the repo

	var firstErr error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken} {
		if err := s.repo.Remove(key); err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "remove %q", key)
			}
			log.Warn().Err(err).Str("key", key).Msg("failed to remove durable credential")
		}
	}
	return firstErr
}

// load pulls the durable copies into memory once. Callers must hold the
// write lock.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	if v, err := s.repo.Get(KeyAccessToken); err == nil {
		s.accessToken = v
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Msg("failed to read durable access token")
	}
	if v, err := s.repo.Get(KeyRefreshToken); err == nil {
		s.refreshToken = v
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Msg("failed to read durable refresh token")
	}
}
