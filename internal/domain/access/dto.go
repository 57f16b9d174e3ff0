package access

import "time"

type GrantRequest struct {
	SubAdminID    int64 `json:"subAdminId" validate:"required"`
	LandingPageID int64 `json:"landingPageId" validate:"required"`
}

type CreateAccessRequestRequest struct {
	LandingPageID int64  `json:"landingPageId" validate:"required"`
	Message       string `json:"message"`
}

type RejectAccessRequestRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// AccessView is the list projection joining user and page summaries.
type AccessView struct {
	ID              int64       `json:"id"`
	Status          GrantStatus `json:"status"`
	GrantedAt       time.Time   `json:"grantedAt"`
	RevokedAt       *time.Time  `json:"revokedAt,omitempty"`
	SubAdminID      int64       `json:"subAdminId"`
	SubAdminName    string      `json:"subAdminName"`
	SubAdminEmail   string      `json:"subAdminEmail"`
	LandingPageID   int64       `json:"landingPageId"`
	LandingPageName string      `json:"landingPageName"`
	LandingPageURL  string      `json:"landingPageUrl"`
}
