package notify

import (
	"errors"
	"fmt"
)

// NotificationError reports a failed status notification. StatusCode is 0 when
// the request never produced an HTTP response.
type NotificationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *NotificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status notification failed: %v", e.Err)
	}
	return fmt.Sprintf("status notification failed: %d - %s", e.StatusCode, e.Body)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

func IsNotificationError(err error) (*NotificationError, bool) {
	var notifyErr *NotificationError
	ok := errors.As(err, &notifyErr)
	return notifyErr, ok
}
