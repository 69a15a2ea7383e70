package hotelapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// LoggingTransport logs each outgoing request with its status and duration.
type LoggingTransport struct {
	destination string
	logger      *zerolog.Logger
	next        http.RoundTripper
}

// NewLoggingTransport wraps next (http.DefaultTransport when nil).
func NewLoggingTransport(logger *zerolog.Logger, destination string, next http.RoundTripper) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{destination: destination, logger: logger, next: next}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	ev := t.logger.Debug().
		Str("label", "outgoing-request").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("destination", t.destination)

	res, err := t.next.RoundTrip(req)
	ev = ev.Dur("duration", time.Since(start))
	if err != nil {
		ev.Err(err).Int("code", 0).Msg("")
		return nil, err
	}
	ev.Int("code", res.StatusCode).Msg("")
	return res, nil
}
