package auth

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleSubAdmin   Role = "sub_admin"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// User is an administrator account. Only sub_admin accounts carry a
// meaningful pending/rejected status; a super_admin is always approved.
type User struct {
	ID              int64      `gorm:"column:id;primaryKey" json:"id"`
	Name            string     `gorm:"column:name" json:"name"`
	Email           string     `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"column:password_hash" json:"-"`
	Role            Role       `gorm:"column:role" json:"role"`
	Status          Status     `gorm:"column:status" json:"status"`
	CompanyName     string     `gorm:"column:company_name" json:"companyName"`
	Phone           string     `gorm:"column:phone" json:"phone,omitempty"`
	ApprovedBy      *int64     `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejectedAt,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }

// IsApproved reports whether the account may act. Super admins are
// implicitly approved regardless of the stored status.
func (u *User) IsApproved() bool {
	return u.Role == RoleSuperAdmin || u.Status == StatusApproved
}
