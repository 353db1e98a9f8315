package tracker

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v52/github"
)

const (
	stBadParameterErrorMsg         = "bad value for parameter '%s': '%v'"
	stBadParameterErrorExpectedMsg = "bad value for parameter '%s': '%v' (expected: '%v')"
	stNotFoundErrorMsg             = "%s '%s' not found"
)

// AuthenticationError means the credentials are missing or rejected by the remote.
type AuthenticationError struct {
	message string
}

func (err AuthenticationError) Error() string {
	return err.message
}

func NewAuthenticationError(msg string) AuthenticationError {
	return AuthenticationError{message: msg}
}

// NotFoundError means the repository, issue or comment does not exist.
type NotFoundError struct {
	entity string
	ID     string
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf(stNotFoundErrorMsg, err.entity, err.ID)
}

func NewNotFoundError(entity string, id string) NotFoundError {
	return NotFoundError{entity: entity, ID: id}
}

// RateLimitError means the remote quota is exhausted. Reset is zero when unknown.
type RateLimitError struct {
	Reset   time.Time
	message string
}

func (err RateLimitError) Error() string {
	if err.Reset.IsZero() {
		return err.message
	}
	return fmt.Sprintf("%s (resets at %v)", err.message, err.Reset.Format(time.RFC3339))
}

func NewRateLimitError(msg string, reset time.Time) RateLimitError {
	return RateLimitError{message: msg, Reset: reset}
}

// NoMatchError means a comment body carries no package marker.
type NoMatchError struct {
	Pattern string
}

func (err NoMatchError) Error() string {
	return fmt.Sprintf("no match for pattern %q", err.Pattern)
}

// BadParameterError means that a parameter was not as required
type BadParameterError struct {
	parameter        string
	value            interface{}
	expectedValue    interface{}
	hasExpectedValue bool
}

func (err BadParameterError) Error() string {
	if err.hasExpectedValue {
		return fmt.Sprintf(stBadParameterErrorExpectedMsg, err.parameter, err.value, err.expectedValue)
	}
	return fmt.Sprintf(stBadParameterErrorMsg, err.parameter, err.value)
}

// Expected sets the optional expected value on the BadParameterError
func (err BadParameterError) Expected(expected interface{}) BadParameterError {
	err.expectedValue = expected
	err.hasExpectedValue = true
	return err
}

func NewBadParameterError(param string, actual interface{}) BadParameterError {
	return BadParameterError{parameter: param, value: actual}
}

func IsAuthenticationError(err error) bool {
	var target AuthenticationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsRateLimitError(err error) bool {
	var target RateLimitError
	return errors.As(err, &target)
}

func IsNoMatchError(err error) bool {
	var target NoMatchError
	return errors.As(err, &target)
}

func IsBadParameterError(err error) bool {
	var target BadParameterError
	return errors.As(err, &target)
}

// translate maps a go-github failure onto the tracker error taxonomy.
// entity and id name what was being fetched, for NotFoundError.
func translate(err error, entity string, id string) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return NewRateLimitError(rateErr.Message, rateErr.Rate.Reset.Time)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var reset time.Time
		if abuseErr.RetryAfter != nil {
			reset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return NewRateLimitError(abuseErr.Message, reset)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return NewAuthenticationError(respErr.Message)
		case http.StatusNotFound:
			return NewNotFoundError(entity, id)
		case http.StatusTooManyRequests:
			return NewRateLimitError(respErr.Message, time.Time{})
		}
	}
	return err
}
