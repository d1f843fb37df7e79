package bgg

import "errors"

var (
	// ErrBadResponse is returned when a response body cannot be decoded.
	ErrBadResponse = errors.New("bad response")

	// ErrNotFound is returned when a lookup yields no item for the requested identifier.
	ErrNotFound = errors.New("not found")

	// ErrUnexpectedStatus is returned for HTTP statuses other than 200 and 202.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
