package postgres

import "errors"

var (
	ErrFieldsNotAllowedToUpdate = errors.New("provided fields are not allowed to update")
)
