package visualcrossing

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindTransport covers DNS failures, refused connections, timeouts and
	// cancelled requests.
	KindTransport ErrorKind = "transport"
	// KindNetwork is a response with a non-2xx status.
	KindNetwork ErrorKind = "network"
	// KindDecode is a 2xx response whose body is not the expected JSON.
	KindDecode ErrorKind = "decode"
)

type FetchError struct {
	Kind       ErrorKind
	Location   string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindNetwork:
		if e.Body == "" {
			return fmt.Sprintf("weather API returned %s for %q", e.Status, e.Location)
		}
		return fmt.Sprintf("weather API returned %s for %q: %s", e.Status, e.Location, e.Body)
	default:
		return fmt.Sprintf("weather %s error for %q: %v", e.Kind, e.Location, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf returns the fetch failure kind carried anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return "", false
	}
	return fe.Kind, true
}
