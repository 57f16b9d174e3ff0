package admin

// CreateSubAdminRequest provisions an account that skips the approval queue.
type CreateSubAdminRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CompanyName string `json:"companyName" validate:"required"`
	Phone       string `json:"phone"`
}

// UpdateSubAdminRequest mutates profile fields. LandingPageID, when present,
// reassigns the sub-admin's active grants to that single page; an explicit
// zero clears all active grants.
type UpdateSubAdminRequest struct {
	Name          *string `json:"name"`
	CompanyName   *string `json:"companyName"`
	Phone         *string `json:"phone"`
	LandingPageID *int64  `json:"landingPageId"`
}

// RejectUserRequest denies a pending registration. The reason is optional.
type RejectUserRequest struct {
	Reason string `json:"reason"`
}
