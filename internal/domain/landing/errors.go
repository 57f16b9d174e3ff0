package landing

import "errors"

var (
	ErrPageNotFound  = errors.New("landing page not found")
	ErrNameTaken     = errors.New("landing page name already exists")
	ErrURLTaken      = errors.New("landing page url already exists")
	ErrInvalidStatus = errors.New("status must be active or inactive")
	ErrHasLeads      = errors.New("landing page has leads")
)
