package partner

import (
	"errors"
	"fmt"
)

// AccessTokenError covers every failed token exchange outcome: non-2xx
// responses, transport failures, and 2xx responses missing a required field.
// StatusCode is 0 when no HTTP response was received.
type AccessTokenError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AccessTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("access token request failed: %v", e.Err)
	}
	return fmt.Sprintf("access token request failed: %d - %s", e.StatusCode, e.Body)
}

func (e *AccessTokenError) Unwrap() error {
	return e.Err
}

func IsAccessTokenError(err error) (*AccessTokenError, bool) {
	var tokenErr *AccessTokenError
	ok := errors.As(err, &tokenErr)
	return tokenErr, ok
}
