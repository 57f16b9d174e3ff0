package admin

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNotSubAdmin        = errors.New("user is not a sub-admin")
	ErrAlreadyDecided     = errors.New("user already approved or rejected")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrHasLeads           = errors.New("sub-admin pages have existing leads")
)
