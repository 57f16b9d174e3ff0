package access

import "time"

type GrantStatus string

const (
	GrantActive   GrantStatus = "active"
	GrantInactive GrantStatus = "inactive"
	GrantRevoked  GrantStatus = "revoked"
)

// AdminAccess authorizes one sub-admin to view and manage leads of one
// landing page. At most one record exists per (sub admin, landing page)
// pair: re-granting reactivates the record instead of inserting a second
// one, and revoking keeps it for audit.
type AdminAccess struct {
	ID            int64       `gorm:"column:id;primaryKey" json:"id"`
	SubAdminID    int64       `gorm:"column:sub_admin_id;index:idx_admin_access_pair,unique" json:"subAdminId"`
	LandingPageID int64       `gorm:"column:landing_page_id;index:idx_admin_access_pair,unique" json:"landingPageId"`
	GrantedBy     int64       `gorm:"column:granted_by" json:"grantedBy"`
	Status        GrantStatus `gorm:"column:status" json:"status"`
	GrantedAt     time.Time   `gorm:"column:granted_at" json:"grantedAt"`
	RevokedAt     *time.Time  `gorm:"column:revoked_at" json:"revokedAt,omitempty"`
	RevokedBy     *int64      `gorm:"column:revoked_by" json:"revokedBy,omitempty"`
	CreatedAt     time.Time   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"column:updated_at" json:"updatedAt"`
}

func (AdminAccess) TableName() string { return "admin_accesses" }

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// AccessRequest is a sub-admin's ask for access to a landing page, pending
// a super-admin decision.
type AccessRequest struct {
	ID              int64         `gorm:"column:id;primaryKey" json:"id"`
	SubAdminID      int64         `gorm:"column:sub_admin_id;index" json:"subAdminId"`
	LandingPageID   int64         `gorm:"column:landing_page_id;index" json:"landingPageId"`
	Status          RequestStatus `gorm:"column:status" json:"status"`
	Message         string        `gorm:"column:message" json:"message,omitempty"`
	ApprovedBy      *int64        `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time    `gorm:"column:approved_at" json:"approvedAt,omitempty"`
	RejectedBy      *int64        `gorm:"column:rejected_by" json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time    `gorm:"column:rejected_at" json:"rejectedAt,omitempty"`
	RejectionReason string        `gorm:"column:rejection_reason" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time     `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"column:updated_at" json:"updatedAt"`
}

func (AccessRequest) TableName() string { return "access_requests" }
