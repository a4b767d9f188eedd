package handler

import "errors"

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidWorldID = errors.New("invalid world ID")
	errInvalidPostID = errors.New("invalid post ID")
	errInvalidUserID = errors.New("invalid user ID")
)
