package middleware

import (
	"net/http"

	"github.com/2beens/operatorprotocol/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"ip":     pkg.ReadClientIP(r),
				"ua":     r.Header.Get("User-Agent"),
			}
			// otelmux runs first, link the log line to the request trace
			if spanCtx := trace.SpanContextFromContext(r.Context()); spanCtx.HasTraceID() {
				fields["trace-id"] = spanCtx.TraceID().String()
			}
			log.WithFields(fields).Trace("====> request")
			next.ServeHTTP(w, r)
		})
	}
}
