package admin

import (
	"context"

	"leadcapture/internal/domain/auth"
)

// UserStore is the user data access needed for sub-admin management.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *auth.User) error
	Update(ctx context.Context, u *auth.User) error
	Delete(ctx context.Context, id int64) error
	ListByRole(ctx context.Context, role auth.Role, status *auth.Status, page, limit int) ([]auth.User, int, error)
}

// AccessManager moves a sub-admin's active grants.
type AccessManager interface {
	Reassign(ctx context.Context, grantedBy, subAdminID int64, newLandingPageID *int64) error
}

// GrantHistory exposes the grant records behind the deletion guard and
// cleanup.
type GrantHistory interface {
	PageIDsEverGranted(ctx context.Context, subAdminID int64) ([]int64, error)
	DeleteAccessForSubAdmin(ctx context.Context, subAdminID int64) error
}

// LeadCounter counts leads under a page set for the deletion guard.
type LeadCounter interface {
	CountByLandingPages(ctx context.Context, landingPageIDs []int64) (int, error)
}
