package types

import "errors"

// UnexpectedResponseError reports that the origin violated a structural
// expectation about its responses: a missing or garbled Segment-Count
// header, a HEAD response without a content length, or a codec declaration
// inconsistent with its progressive/adaptive classification.
type UnexpectedResponseError struct {
	Reason string
}

func (e *UnexpectedResponseError) Error() string {
	return "unexpected response: " + e.Reason
}

// IsUnexpectedResponse reports whether err is an UnexpectedResponseError.
func IsUnexpectedResponse(err error) bool {
	var target *UnexpectedResponseError
	return errors.As(err, &target)
}
