package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Git-Commit-Therapy/sancommitto-client/authclient"
	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
	"github.com/Git-Commit-Therapy/sancommitto-client/internal/metrics"
)

// DefaultRefreshInterval is how often the background refresher exchanges
// the refresh token when no interval is configured.
const DefaultRefreshInterval = 60 * time.Second

// RefreshAPI is the slice of the auth transport the refresher needs.
type RefreshAPI interface {
	Refresh(ctx context.Context, refreshToken string) (*authclient.RefreshResponse, error)
}

// Refresher keeps an unattended session alive: while a refresh token
// exists it periodically exchanges it for a fresh token pair and writes
// the result into the credential store. It stops itself when there is
// nothing left to refresh or when the auth service rejects the refresh
// token outright, in which case it also clears the store.
type Refresher struct {
	store    *credentials.Store
	api      RefreshAPI
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewRefresher creates an idle Refresher. A non-positive interval falls
// back to DefaultRefreshInterval.
func NewRefresher(store *credentials.Store, api RefreshAPI, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{store: store, api: api, interval: interval}
}

// Start arms the recurring refresh tick. It is a no-op while already
// running, and a no-op when no refresh token exists - the timer only
// runs when there is something to keep alive.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}
	if r.store.RefreshToken() == "" {
		log.Debug().Msg("no refresh token, refresher not started")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.gen++
	go r.run(ctx, r.gen)
	log.Debug().Dur("interval", r.interval).Msg("token refresher started")
}

// Stop disarms the tick. Idempotent, and safe to call while a refresh
// call is in flight: the call is left to complete, but its result is
// discarded.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel == nil {
		return
	}
	r.cancel()
	r.cancel = nil
	log.Debug().Msg("token refresher stopped")
}

// Running reports whether the recurring tick is armed.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

func (r *Refresher) run(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(gen)
		}
	}
}

func (r *Refresher) tick(gen uint64) {
	refreshToken := r.store.RefreshToken()
	if refreshToken == "" {
		// Cleared out from under us, e.g. by a logout racing the tick.
		log.Debug().Msg("refresh token gone, refresher stopping")
		r.Stop()
		return
	}

	// The call itself deliberately does not use the run context: stopping
	// the refresher must not cancel an in-flight exchange, only suppress
	// its result.
	resp, err := r.api.Refresh(context.Background(), refreshToken)
	if err != nil {
		if errors.Is(err, authclient.ErrRefreshRejected) {
			metrics.TokenRefreshes.WithLabelValues(metrics.ResultRejected).Inc()
			log.Warn().Err(err).Msg("refresh token rejected, forcing logout")
			r.Stop()
			if clearErr := r.store.Clear(); clearErr != nil {
				log.Error().Err(clearErr).Msg("failed to clear credentials")
			}
			return
		}
		metrics.TokenRefreshes.WithLabelValues(metrics.ResultFailure).Inc()
		log.Warn().Err(err).Msg("token refresh failed, will retry on next tick")
		return
	}

	r.apply(gen, resp)
}

// apply writes a refresh result into the store. The store writes happen
// under r.mu and only while the run that issued the exchange is still
// armed, so a Stop plus Clear can never be followed by a stale result
// repopulating the store.
func (r *Refresher) apply(gen uint64, resp *authclient.RefreshResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel == nil || r.gen != gen {
		// Stopped or restarted while the exchange was in flight; the
		// result is stale.
		return
	}

	// Each field is applied independently: a response omitting one token
	// leaves the stored value untouched.
	if resp.AccessToken != "" {
		if err := r.store.SetAccessToken(resp.AccessToken); err != nil {
			log.Error().Err(err).Msg("failed to store refreshed access token")
		}
	}
	if resp.RefreshToken != "" {
		if err := r.store.SetRefreshToken(resp.RefreshToken); err != nil {
			log.Error().Err(err).Msg("failed to store refreshed refresh token")
		}
	}
	metrics.TokenRefreshes.WithLabelValues(metrics.ResultSuccess).Inc()
}
