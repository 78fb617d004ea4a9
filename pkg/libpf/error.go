package libpf

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// ErrAuthenticationFailed is returned when the portal rejects the bearer token.
// The session is no longer usable and must not be retried with.
var ErrAuthenticationFailed = errors.New("authentication failed")

// An APIError represents an HTTP error returned by the portal.
type APIError struct {
	StatusCode int
	Detail     string
}

// parseAPIError builds an APIError from a response body.
// The portal reports errors as `{"detail": "..."}` but detail can also be a
// validation object or plain garbage, so parsing stays lenient.
func parseAPIError(r io.Reader, code int) error {
	apierr := &APIError{
		StatusCode: code,
		Detail:     http.StatusText(code),
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return apierr
	}

	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return apierr
	}

	if detail := v.Get("detail"); detail != nil {
		switch detail.Type() {
		case fastjson.TypeString:
			apierr.Detail = string(detail.GetStringBytes())
		default:
			apierr.Detail = detail.String()
		}
	}

	return apierr
}

func (e *APIError) Error() string {
	return e.Detail
}

// IsAuthenticationFailure returns true if err is the portal's uniform
// invalid/expired token signal (HTTP 401).
func IsAuthenticationFailure(err error) bool {
	if errors.Cause(err) == ErrAuthenticationFailed {
		return true
	}
	apierr, ok := errors.Cause(err).(*APIError)
	return ok && apierr.StatusCode == http.StatusUnauthorized
}
