package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuth                = errors.New("authentication failed")
	ErrInvalidPath         = errors.New("invalid path")
	ErrAPI                 = errors.New("api error")
	ErrIncompleteDrilldown = errors.New("incomplete drilldown")
	ErrNoChoices           = errors.New("no choices returned, was an invalid value specified")
	ErrProfileDeleted      = errors.New("profile has already been deleted")
	ErrProfileGone         = errors.New("profile has been deleted")
	ErrUnitMismatch        = errors.New("unit mismatch")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrBatchMismatch       = errors.New("created profile items do not match the submitted batch")
)

type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("path %q does not start with /", e.Path)
}

func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// APIError reports a status code the client does not accept.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	// RejectedFreshToken is set when a 401 followed a successful re-authentication.
	RejectedFreshToken bool
}

func (e *APIError) Error() string {
	if e.RejectedFreshToken {
		return fmt.Sprintf("%s %s: server rejected fresh authentication token", e.Method, e.Path)
	}

	return fmt.Sprintf("status code %d from %s to %s", e.StatusCode, e.Method, e.Path)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

type IncompleteDrilldownError struct {
	Attribute string
}

func (e *IncompleteDrilldownError) Error() string {
	return fmt.Sprintf("incomplete drilldown, %q must be specified", e.Attribute)
}

func (e *IncompleteDrilldownError) Is(target error) bool {
	return target == ErrIncompleteDrilldown
}

type UnitMismatchError struct {
	Expected string
	Actual   string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("profile item uses unit %q rather than %q", e.Actual, e.Expected)
}

func (e *UnitMismatchError) Is(target error) bool {
	return target == ErrUnitMismatch
}
