// ABOUTME: RoundTripper chain for outgoing API requests
// ABOUTME: Adds request IDs and bearer credentials, and logs each exchange

package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader correlates client logs with backend logs.
const RequestIDHeader = "X-Request-ID"

// Middleware decorates a RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain applies middleware to a transport in order.
// The first middleware in the list is the outermost (executes first).
func Chain(rt http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	for i := len(middlewares) - 1; i >= 0; i-- {
		rt = middlewares[i](rt)
	}
	return rt
}

// WithRequestID sets X-Request-ID unless the caller already did.
func WithRequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// WithBearer attaches the stored credential. A failing or empty source
// sends the request anonymously; the backend decides what that means.
func WithBearer(tokens TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if tokens == nil {
			return next
		}
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token, err := tokens.Token(r.Context())
			if err != nil || token == "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}

// WithLogging logs request start and completion at debug level.
func WithLogging(log *zap.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			path := sanitizePath(r.URL.Path)

			resp, err := next.RoundTrip(r)

			fields := []zap.Field{
				zap.String("request_id", r.Header.Get(RequestIDHeader)),
				zap.String("method", r.Method),
				zap.String("host", r.URL.Host),
				zap.String("path", path),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			}
			if err != nil {
				log.Debug("request failed", append(fields, zap.Error(err))...)
				return nil, err
			}
			log.Debug("request completed", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}

// sanitizePath removes control characters so a crafted username or movie id
// cannot forge log lines.
func sanitizePath(p string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, p)
}
