// Package session is the facade over the authentication subsystem. It
// composes the credential store, token inspection, the auth transport
// and the background refresher into the operations the UI layer calls:
// login, signup, logout, validity and role queries.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Git-Commit-Therapy/sancommitto-client/authclient"
	"github.com/Git-Commit-Therapy/sancommitto-client/connection"
	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
	"github.com/Git-Commit-Therapy/sancommitto-client/internal/metrics"
	"github.com/Git-Commit-Therapy/sancommitto-client/token"
)

// AuthAPI is the auth transport surface the session service depends on.
// *authclient.Client satisfies it; tests substitute fakes.
type AuthAPI interface {
	Login(ctx context.Context, fiscalCode, password string) (*authclient.LoginResponse, error)
	SignUp(ctx context.Context, profile authclient.Profile) (*authclient.SignUpResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*authclient.RefreshResponse, error)
}

// Service owns one user session. There is exactly one authoritative
// credential per running client, so applications assemble a single
// Service at startup and thread it through.
type Service struct {
	store   *credentials.Store
	factory *connection.Factory

	mu        sync.Mutex
	api       AuthAPI
	refresher *Refresher

	newAPI   func(endpoint string) (AuthAPI, error)
	interval time.Duration
	nowTime  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNowTime sets the clock used for token validity checks (primarily
// for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithRefreshInterval sets the background refresh cadence.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.interval = interval
	}
}

// WithTransportBuilder overrides how the auth transport is built from an
// endpoint (primarily for testing).
func WithTransportBuilder(build func(endpoint string) (AuthAPI, error)) Option {
	return func(s *Service) {
		s.newAPI = build
	}
}

// New creates a session Service over the given store and connection
// factory. Call Init before any remote operation.
func New(store *credentials.Store, factory *connection.Factory, options ...Option) *Service {
	s := &Service{
		store:    store,
		factory:  factory,
		interval: DefaultRefreshInterval,
		nowTime:  time.Now,
		newAPI: func(endpoint string) (AuthAPI, error) {
			return authclient.New(endpoint)
		},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Init records the authentication endpoint. The transport itself is
// built lazily on first use.
func (s *Service) Init(endpoint string) error {
	if strings.TrimSpace(endpoint) == "" {
		return ErrNoEndpoint
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetAuthEndpoint(endpoint)
	// Rebuild transport and refresher against the new endpoint on next use.
	s.api = nil
	if s.refresher != nil {
		s.refresher.Stop()
		s.refresher = nil
	}
	return nil
}

// Login authenticates with a fiscal code and password. A server-side
// rejection returns (false, nil) and leaves the credential store
// untouched; transport failures propagate. On success both tokens are
// stored and the background refresher starts.
func (s *Service) Login(ctx context.Context, fiscalCode, password string) (bool, error) {
	api, err := s.client()
	if err != nil {
		return false, err
	}

	resp, err := api.Login(ctx, fiscalCode, password)
	if err != nil {
		return false, err
	}
	metrics.Logins.WithLabelValues(string(resp.Status)).Inc()

	if resp.Status != authclient.StatusSuccess {
		log.Info().Str("status", string(resp.Status)).Msg("login rejected")
		return false, nil
	}

	if err := s.store.SetAccessToken(resp.AccessToken); err != nil {
		return false, errors.Wrap(err, "store access token")
	}
	if err := s.store.SetRefreshToken(resp.RefreshToken); err != nil {
		return false, errors.Wrap(err, "store refresh token")
	}

	s.startRefresher(api)
	log.Info().Msg("login succeeded")
	return true, nil
}

// SignUp registers a new user. Registration and login are separate
// steps: a successful signup captures no tokens.
func (s *Service) SignUp(ctx context.Context, profile authclient.Profile) (bool, error) {
	api, err := s.client()
	if err != nil {
		return false, err
	}

	resp, err := api.SignUp(ctx, profile)
	if err != nil {
		return false, err
	}
	return resp.Status == authclient.StatusSuccess, nil
}

// Logout stops the refresher and clears the credential store. Idempotent.
func (s *Service) Logout() {
	s.mu.Lock()
	refresher := s.refresher
	s.mu.Unlock()

	if refresher != nil {
		refresher.Stop()
	}
	if err := s.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear credentials on logout")
	}
	log.Info().Msg("logged out")
}

// IsAuthenticated reports whether the stored access token is currently
// valid. It never reports "probably": a token that cannot be decoded or
// has expired is simply not authenticated.
func (s *Service) IsAuthenticated() bool {
	return token.Valid(s.store.AccessToken(), s.nowTime())
}

// Roles returns the role set carried by the stored access token, mapped
// onto the closed role enum. Unknown role strings are ignored.
func (s *Service) Roles() []token.Role {
	return token.Roles(s.store.AccessToken())
}

// AccessToken returns the raw access token for callers that attach
// credentials manually. Connections built by the factory inject the
// token themselves; prefer those.
func (s *Service) AccessToken() string {
	return s.store.AccessToken()
}

// Connection returns the credentialed connection for a named service.
func (s *Service) Connection(service connection.Service) (*connection.Conn, error) {
	return s.factory.Get(service)
}

// RefreshNow performs one refresh exchange immediately, outside the
// recurring schedule. It reports false when no refresh token exists or
// when the auth service rejected it, which also forces a logout;
// transport failures propagate.
func (s *Service) RefreshNow(ctx context.Context) (bool, error) {
	api, err := s.client()
	if err != nil {
		return false, err
	}

	refreshToken := s.store.RefreshToken()
	if refreshToken == "" {
		return false, nil
	}

	resp, err := api.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, authclient.ErrRefreshRejected) {
			metrics.TokenRefreshes.WithLabelValues(metrics.ResultRejected).Inc()
			log.Warn().Err(err).Msg("refresh token rejected, forcing logout")
			s.Logout()
			return false, nil
		}
		metrics.TokenRefreshes.WithLabelValues(metrics.ResultFailure).Inc()
		return false, err
	}

	if resp.AccessToken != "" {
		if err := s.store.SetAccessToken(resp.AccessToken); err != nil {
			return false, errors.Wrap(err, "store access token")
		}
	}
	if resp.RefreshToken != "" {
		if err := s.store.SetRefreshToken(resp.RefreshToken); err != nil {
			return false, errors.Wrap(err, "store refresh token")
		}
	}
	metrics.TokenRefreshes.WithLabelValues(metrics.ResultSuccess).Inc()
	return true, nil
}

// StartTokenRefresh arms the background refresher explicitly, e.g. after
// a restart that found persisted credentials.
func (s *Service) StartTokenRefresh() error {
	api, err := s.client()
	if err != nil {
		return err
	}
	s.startRefresher(api)
	return nil
}

// RefreshRunning reports whether the background refresher is armed.
func (s *Service) RefreshRunning() bool {
	s.mu.Lock()
	refresher := s.refresher
	s.mu.Unlock()

	return refresher != nil && refresher.Running()
}

// StopTokenRefresh disarms the background refresher.
func (s *Service) StopTokenRefresh() {
	s.mu.Lock()
	refresher := s.refresher
	s.mu.Unlock()

	if refresher != nil {
		refresher.Stop()
	}
}

func (s *Service) client() (AuthAPI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.api != nil {
		return s.api, nil
	}
	endpoint := s.store.AuthEndpoint()
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	api, err := s.newAPI(endpoint)
	if err != nil {
		return nil, err
	}
	s.api = api
	return api, nil
}

func (s *Service) startRefresher(api AuthAPI) {
	s.mu.Lock()
	if s.refresher == nil {
		s.refresher = NewRefresher(s.store, api, s.interval)
	}
	refresher := s.refresher
	s.mu.Unlock()

	refresher.Start()
}
