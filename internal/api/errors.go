package api

import (
	"fmt"
	"net/http"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
	"github.com/pkg/errors"
)

// RemoteError is a non-2xx answer from the batch server, e.g. a 409 for
// "job instance is not in a cancellable state".
type RemoteError struct {
	StatusCode int
	Message    string
	Path       string
	err        error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("batch server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("batch server returned %d: %s", e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.err }

func (e *RemoteError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

func (e *RemoteError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// wrap converts go-gh HTTP errors into RemoteError and annotates everything
// else (transport failures, decode errors) with the operation.
func wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var httpErr *ghAPI.HTTPError
	if errors.As(err, &httpErr) {
		re := &RemoteError{StatusCode: httpErr.StatusCode, Message: httpErr.Message, err: err}
		if httpErr.RequestURL != nil {
			re.Path = httpErr.RequestURL.Path
		}
		return errors.WithMessagef(re, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}

// IsNotFound reports whether err is a 404 from the batch server.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.NotFound()
}
