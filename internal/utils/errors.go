package utils

import "errors"

var (
	ErrUnauthenticated    = errors.New("invalid or expired token")
	ErrConflict           = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid login details")
	ErrBadRequest         = errors.New("bad request")
	ErrEmptyFile          = errors.New("file is empty")
	ErrTranscodeFailed    = errors.New("transcode failed")
	ErrStorageFailure     = errors.New("storage backend failure")
)
