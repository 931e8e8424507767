package app

import "errors"

// InvalidRequestError is special error type returned when any request params are invalid
type InvalidRequestError string

// Error implements error interface
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request
func IsInvalidRequestError(err error) bool {
	type invalidReqErr interface {
		IsInvalidRequest() bool
	}

	var ire invalidReqErr
	if errors.As(err, &ire) {
		return ire.IsInvalidRequest()
	}

	return false
}

// TooManyRequestsError is special error type returned when operation was aborted due to rate limiting
type TooManyRequestsError string

// Error implements error interface
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequests tells that this error is 'too many requests'.
// Returns always true.
func (TooManyRequestsError) IsTooManyRequests() bool {
	return true
}

// IsTooManyRequestsError checks if given error is caused by exceeding request limits
func IsTooManyRequestsError(err error) bool {
	type tooManyReqErr interface {
		IsTooManyRequests() bool
	}

	var tmre tooManyReqErr
	if errors.As(err, &tmre) {
		return tmre.IsTooManyRequests()
	}

	return false
}

// ScheduledForLaterError is special error type returned when data is not available yet,
// but its preparation was scheduled
type ScheduledForLaterError string

// Error implements error interface
func (e ScheduledForLaterError) Error() string {
	return string(e)
}

// IsScheduledForLater tells that data preparation for this request was scheduled.
// Returns always true.
func (ScheduledForLaterError) IsScheduledForLater() bool {
	return true
}

// IsScheduledForLaterError checks if given error means that data preparation was scheduled
func IsScheduledForLaterError(err error) bool {
	type schedErr interface {
		IsScheduledForLater() bool
	}

	var se schedErr
	if errors.As(err, &se) {
		return se.IsScheduledForLater()
	}

	return false
}
