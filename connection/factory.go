// Package connection builds and caches the credentialed client
// connections the data-fetch layers use to reach the remote services.
// One connection exists per named service; each outbound call reads the
// current access token from the credential store when it is sent.
package connection

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
	"github.com/Git-Commit-Therapy/sancommitto-client/internal/metrics"
	"github.com/Git-Commit-Therapy/sancommitto-client/token"
)

// Service names a remote service a connection can be built for.
type Service string

const (
	ServiceAuth               Service = "auth"
	ServicePatients           Service = "patients"
	ServiceEmployees          Service = "employees"
	ServiceEmergencyWard      Service = "emergencyWard"
	ServiceEmergencyWardPanel Service = "emergencyWardPanel"
)

var (
	// ErrUnauthenticated reports that no currently-valid access token is
	// available. Callers should send the user back to login.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnknownService reports a service name with no configured endpoint.
	ErrUnknownService = errors.New("unknown service")
)

// EndpointResolver maps a service name to its endpoint URL. An empty
// result means the service is not configured. The resolver is consulted
// on every Get, so endpoint changes invalidate cached connections.
type EndpointResolver func(Service) string

// Factory owns the per-service connection singletons.
type Factory struct {
	mu        sync.Mutex
	store     *credentials.Store
	endpoints EndpointResolver
	conns     map[Service]*Conn
	transport http.RoundTripper
	nowTime   func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithNowTime sets the clock used for token validity checks (primarily
// for testing).
func WithNowTime(nowFunc func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.nowTime = nowFunc
	}
}

// WithTransport sets the base RoundTripper beneath the bearer-stamping
// one (primarily for testing).
func WithTransport(rt http.RoundTripper) FactoryOption {
	return func(f *Factory) {
		f.transport = rt
	}
}

// NewFactory creates a Factory reading tokens from store and endpoints
// from the resolver.
func NewFactory(store *credentials.Store, endpoints EndpointResolver, options ...FactoryOption) *Factory {
	f := &Factory{
		store:     store,
		endpoints: endpoints,
		conns:     make(map[Service]*Conn),
		transport: http.DefaultTransport,
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// Get returns the connection for a named service, building it on first
// use. It fails with ErrUnauthenticated unless the store currently holds
// a valid access token, and rebuilds the connection when the configured
// endpoint has changed since it was built.
func (f *Factory) Get(service Service) (*Conn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	endpoint := normalizeURL(f.endpoints(service))
	if endpoint == "" {
		return nil, ErrUnknownService
	}

	if !token.Valid(f.store.AccessToken(), f.nowTime()) {
		return nil, ErrUnauthenticated
	}

	if conn, ok := f.conns[service]; ok && conn.baseURL == endpoint {
		return conn, nil
	}

	conn := &Conn{
		service: service,
		baseURL: endpoint,
		httpClient: &http.Client{
			Transport: &bearerTransport{base: f.transport, token: f.store.AccessToken},
		},
	}
	f.conns[service] = conn
	metrics.ConnectionsBuilt.WithLabelValues(string(service)).Inc()
	log.Debug().Str("service", string(service)).Str("endpoint", endpoint).Msg("built service connection")
	return conn, nil
}
