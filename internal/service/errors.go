package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrWorldNotFound = errors.New("world not found")
	ErrFailedToFetchUser = errors.New("failed to fetch user")
)
