package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignInsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_sign_ins_total",
		Help: "Total number of successful sign-ins.",
	})

	SignInFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_sign_in_failures_total",
		Help: "Total number of rejected sign-in attempts.",
	})

	RefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_token_refreshes_total",
		Help: "Total number of token refresh attempts against the upstream API.",
	})

	RefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_token_refresh_failures_total",
		Help: "Total number of failed token refreshes (forces re-authentication).",
	})

	GuardRedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_guard_redirects_total",
			Help: "Total number of route guard redirects by reason.",
		},
		[]string{"reason"},
	)
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
