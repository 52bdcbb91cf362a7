package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrRemoteUnavailable   = errors.New("remote unavailable")

	ErrEmptyRestURL     = errors.New("empty rest url")
	ErrNullPrimaryKey   = errors.New("primary key value is null")
	ErrMixedKeyColumns  = errors.New("delete keys hold different columns")
	ErrNoConflictTarget = errors.New("upsert needs conflict columns")
	ErrDecodingPage     = errors.New("error decoding page")
)
