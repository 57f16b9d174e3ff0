package access

import (
	"context"

	"gorm.io/gorm"
)

// Repository handles access grant and access request data access.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *gorm.DB { return r.db }

// -------------------- Grants --------------------

func (r *Repository) CreateAccess(ctx context.Context, a *AdminAccess) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *Repository) GetAccessByID(ctx context.Context, id int64) (*AdminAccess, error) {
	var a AdminAccess
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccessByPair returns the single record for (subAdmin, landingPage)
// regardless of status, or gorm.ErrRecordNotFound.
func (r *Repository) GetAccessByPair(ctx context.Context, subAdminID, landingPageID int64) (*AdminAccess, error) {
	var a AdminAccess
	err := r.db.WithContext(ctx).
		Where("sub_admin_id = ? AND landing_page_id = ?", subAdminID, landingPageID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) UpdateAccess(ctx context.Context, a *AdminAccess) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// ActivePageIDs returns the landing pages a sub-admin can currently see.
func (r *Repository) ActivePageIDs(ctx context.Context, subAdminID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&AdminAccess{}).
		Where("sub_admin_id = ? AND status = ?", subAdminID, GrantActive).
		Pluck("landing_page_id", &ids).Error
	return ids, err
}

// PageIDsEverGranted returns every page the sub-admin has or had access to,
// in any status. Used by the sub-admin deletion guard.
func (r *Repository) PageIDsEverGranted(ctx context.Context, subAdminID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&AdminAccess{}).
		Where("sub_admin_id = ?", subAdminID).
		Pluck("landing_page_id", &ids).Error
	return ids, err
}

// DeactivateActiveForSubAdmin flips every active grant to inactive.
func (r *Repository) DeactivateActiveForSubAdmin(ctx context.Context, subAdminID int64) error {
	return r.db.WithContext(ctx).Model(&AdminAccess{}).
		Where("sub_admin_id = ? AND status = ?", subAdminID, GrantActive).
		Update("status", GrantInactive).Error
}

// DeleteAccessForSubAdmin removes the sub-admin's grant records outright.
// Only administrative bulk flows use this; revoke never deletes.
func (r *Repository) DeleteAccessForSubAdmin(ctx context.Context, subAdminID int64) error {
	return r.db.WithContext(ctx).
		Where("sub_admin_id = ?", subAdminID).
		Delete(&AdminAccess{}).Error
}

const accessViewSelect = `admin_accesses.id, admin_accesses.status, admin_accesses.granted_at, admin_accesses.revoked_at,
	admin_accesses.sub_admin_id, u.name AS sub_admin_name, u.email AS sub_admin_email,
	admin_accesses.landing_page_id, lp.name AS landing_page_name, lp.url AS landing_page_url`

func (r *Repository) listViews(ctx context.Context, where string, args ...interface{}) ([]AccessView, error) {
	q := r.db.WithContext(ctx).Table("admin_accesses").
		Select(accessViewSelect).
		Joins("JOIN users u ON u.id = admin_accesses.sub_admin_id").
		Joins("JOIN landing_pages lp ON lp.id = admin_accesses.landing_page_id").
		Order("admin_accesses.granted_at DESC")
	if where != "" {
		q = q.Where(where, args...)
	}

	var views []AccessView
	err := q.Scan(&views).Error
	return views, err
}

func (r *Repository) ListAll(ctx context.Context) ([]AccessView, error) {
	return r.listViews(ctx, "")
}

func (r *Repository) ListBySubAdmin(ctx context.Context, subAdminID int64) ([]AccessView, error) {
	return r.listViews(ctx, "admin_accesses.sub_admin_id = ?", subAdminID)
}

func (r *Repository) ListByLandingPage(ctx context.Context, landingPageID int64) ([]AccessView, error) {
	return r.listViews(ctx, "admin_accesses.landing_page_id = ?", landingPageID)
}

// -------------------- Requests --------------------

func (r *Repository) CreateRequest(ctx context.Context, req *AccessRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *Repository) GetRequestByID(ctx context.Context, id int64) (*AccessRequest, error) {
	var req AccessRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *Repository) UpdateRequest(ctx context.Context, req *AccessRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *Repository) DeleteRequest(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&AccessRequest{}, id).Error
}

// HasOpenRequest reports whether a pending-or-approved request already
// exists for the pair.
func (r *Repository) HasOpenRequest(ctx context.Context, subAdminID, landingPageID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AccessRequest{}).
		Where("sub_admin_id = ? AND landing_page_id = ? AND status IN ?",
			subAdminID, landingPageID, []RequestStatus{RequestPending, RequestApproved}).
		Count(&count).Error
	return count > 0, err
}

// ListRequests returns requests newest first; subAdminID 0 means all
// sub-admins, status nil means all statuses.
func (r *Repository) ListRequests(ctx context.Context, subAdminID int64, status *RequestStatus) ([]AccessRequest, error) {
	q := r.db.WithContext(ctx).Model(&AccessRequest{}).Order("created_at DESC")
	if subAdminID != 0 {
		q = q.Where("sub_admin_id = ?", subAdminID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var reqs []AccessRequest
	err := q.Find(&reqs).Error
	return reqs, err
}

func (r *Repository) CountRequestsByStatus(ctx context.Context, status RequestStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AccessRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return int(count), err
}
