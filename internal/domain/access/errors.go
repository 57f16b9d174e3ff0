package access

import "errors"

var (
	ErrAccessNotFound      = errors.New("access record not found")
	ErrAlreadyGranted      = errors.New("access already granted")
	ErrAlreadyRevoked      = errors.New("access already revoked")
	ErrNotSubAdmin         = errors.New("user is not a sub admin")
	ErrPageMissing         = errors.New("landing page not found")
	ErrSubAdminNotApproved = errors.New("sub admin is not approved")
	ErrRequestNotFound     = errors.New("access request not found")
	ErrDuplicateRequest    = errors.New("a pending or approved request already exists for this landing page")
	ErrRequestNotPending   = errors.New("access request is not pending")
	ErrReasonRequired      = errors.New("rejection reason is required")
)
