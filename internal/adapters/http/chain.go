package httpadapter

import (
	"net/http"
	"time"

	"github.com/dkrasnov/workdesk/internal/config"
	"github.com/dkrasnov/workdesk/internal/observability/metrics"
)

// Chain assembles the standard API middleware stack around a handler:
// traffic control closest to the mux, then metrics, access log and
// request ID outermost.
func Chain(handler http.Handler, m *metrics.HTTPServerMetrics, cfg config.Config) http.Handler {
	handler = backpressureMiddleware(handler, cfg.APIMaxConcurrent, time.Duration(cfg.APIMaxWaitMillis)*time.Millisecond)
	handler = rateLimitMiddleware(handler, float64(cfg.APIRateLimitRPS), cfg.APIRateLimitBurst)
	if m != nil {
		handler = m.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}
