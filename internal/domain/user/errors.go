package user

import "errors"

var (
	ErrUserIDMissing       = errors.New("user_id claim is missing or invalid")
	ErrGroupAccessRequired = errors.New("user is not a member of the required group")
)
