package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// requestIDTransport tags each request with an id and logs the exchange so a
// failed action can be matched with the server's own logs.
type requestIDTransport struct {
	next http.RoundTripper
	log  zerolog.Logger
}

func (t requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(requestIDHeader, id)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	ev := t.log.Debug()
	if err != nil {
		ev = t.log.Warn().Err(err)
	} else if resp.StatusCode >= 400 {
		ev = t.log.Warn().Int("status", resp.StatusCode)
	} else {
		ev = ev.Int("status", resp.StatusCode)
	}
	ev.Str("request_id", id).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("took", time.Since(start)).
		Msg("batch api request")
	return resp, err
}
