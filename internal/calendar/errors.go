package calendar

import (
	"errors"
	"fmt"
)

// ErrStaleResponse marks a window result that arrived after a newer
// navigation was requested. It is internal control flow: callers drop the
// result and never surface the error to the viewer.
var ErrStaleResponse = errors.New("calendar: response superseded by a newer navigation")

// FetchError wraps a failed scope/window read. The merged view fails closed:
// if any source errored, no partial result is rendered. Re-issuing the same
// window request is the retry path.
type FetchError struct {
	Op  string // which read failed: "events", "rules", "enrollments"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("calendar: fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
