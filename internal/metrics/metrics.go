// Package metrics exposes the client's Prometheus collectors. They are
// registered on the default registry; embedding applications decide
// whether and where to serve them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TokenRefreshes counts background refresh-token exchanges by result:
	// success, failure or rejected.
	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sancommitto",
		Subsystem: "session",
		Name:      "token_refresh_total",
		Help:      "Background refresh token exchanges by result.",
	}, []string{"result"})

	// Logins counts login attempts by the status the auth service answered.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sancommitto",
		Subsystem: "session",
		Name:      "login_total",
		Help:      "Login attempts by auth service status.",
	}, []string{"status"})

	// ConnectionsBuilt counts service connections constructed by the factory.
	ConnectionsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sancommitto",
		Subsystem: "connection",
		Name:      "built_total",
		Help:      "Service connections constructed, by service name.",
	}, []string{"service"})
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)
