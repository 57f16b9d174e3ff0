package access

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"leadcapture/internal/domain/auth"
)

// Service contains access grant and access request business logic.
type Service struct {
	accesses AccessRepository
	requests RequestRepository
	users    UserReader
	pages    PageReader
}

func NewService(accesses AccessRepository, requests RequestRepository, users UserReader, pages PageReader) *Service {
	return &Service{accesses: accesses, requests: requests, users: users, pages: pages}
}

// Grant gives a sub-admin access to a landing page. A revoked or inactive
// record for the pair is reactivated in place, keeping the record count at
// one per pair.
func (s *Service) Grant(ctx context.Context, grantedBy, subAdminID, landingPageID int64) (*AdminAccess, error) {
	user, err := s.users.GetByID(ctx, subAdminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotSubAdmin
		}
		return nil, err
	}
	if user.Role != auth.RoleSubAdmin {
		return nil, ErrNotSubAdmin
	}
	if user.Status != auth.StatusApproved {
		return nil, ErrSubAdminNotApproved
	}

	if _, err := s.pages.GetByID(ctx, landingPageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageMissing
		}
		return nil, err
	}

	existing, err := s.accesses.GetAccessByPair(ctx, subAdminID, landingPageID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.Status == GrantActive {
			return nil, ErrAlreadyGranted
		}
		existing.Status = GrantActive
		existing.GrantedBy = grantedBy
		existing.GrantedAt = time.Now()
		existing.RevokedAt = nil
		existing.RevokedBy = nil
		if err := s.accesses.UpdateAccess(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	grant := &AdminAccess{
		SubAdminID:    subAdminID,
		LandingPageID: landingPageID,
		GrantedBy:     grantedBy,
		Status:        GrantActive,
		GrantedAt:     time.Now(),
	}
	if err := s.accesses.CreateAccess(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// Revoke flips a grant to revoked. The record is never deleted here, so the
// grant history stays auditable.
func (s *Service) Revoke(ctx context.Context, revokedBy, accessID int64) (*AdminAccess, error) {
	grant, err := s.accesses.GetAccessByID(ctx, accessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessNotFound
		}
		return nil, err
	}

	if grant.Status == GrantRevoked {
		return nil, ErrAlreadyRevoked
	}

	now := time.Now()
	grant.Status = GrantRevoked
	grant.RevokedAt = &now
	grant.RevokedBy = &revokedBy
	if err := s.accesses.UpdateAccess(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// Reassign deactivates the sub-admin's active grants, then grants the new
// page when one is given. The two steps are independent writes with no
// rollback: a failure after the first leaves the sub-admin without access.
func (s *Service) Reassign(ctx context.Context, grantedBy, subAdminID int64, newLandingPageID *int64) error {
	if err := s.accesses.DeactivateActiveForSubAdmin(ctx, subAdminID); err != nil {
		return err
	}
	if newLandingPageID == nil {
		return nil
	}
	_, err := s.Grant(ctx, grantedBy, subAdminID, *newLandingPageID)
	if errors.Is(err, ErrAlreadyGranted) {
		return nil
	}
	return err
}

func (s *Service) ListAll(ctx context.Context) ([]AccessView, error) {
	return s.accesses.ListAll(ctx)
}

func (s *Service) ListBySubAdmin(ctx context.Context, subAdminID int64) ([]AccessView, error) {
	return s.accesses.ListBySubAdmin(ctx, subAdminID)
}

func (s *Service) ListByLandingPage(ctx context.Context, landingPageID int64) ([]AccessView, error) {
	return s.accesses.ListByLandingPage(ctx, landingPageID)
}

// -------------------- Access requests --------------------

// CreateRequest files a sub-admin's ask for access. A second request is
// rejected while one is pending or approved for the same page.
func (s *Service) CreateRequest(ctx context.Context, subAdminID int64, req CreateAccessRequestRequest) (*AccessRequest, error) {
	if _, err := s.pages.GetByID(ctx, req.LandingPageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageMissing
		}
		return nil, err
	}

	open, err := s.requests.HasOpenRequest(ctx, subAdminID, req.LandingPageID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicateRequest
	}

	request := &AccessRequest{
		SubAdminID:    subAdminID,
		LandingPageID: req.LandingPageID,
		Status:        RequestPending,
		Message:       strings.TrimSpace(req.Message),
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *Service) ListRequests(ctx context.Context, subAdminID int64, status *RequestStatus) ([]AccessRequest, error) {
	return s.requests.ListRequests(ctx, subAdminID, status)
}

// ApproveRequest marks the request approved, then creates or reactivates
// the grant. The second write is best-effort: its failure is surfaced but
// the approval is not rolled back.
func (s *Service) ApproveRequest(ctx context.Context, approverID, requestID int64) (*AccessRequest, error) {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if request.Status != RequestPending {
		return nil, ErrRequestNotPending
	}

	now := time.Now()
	request.Status = RequestApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now
	if err := s.requests.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	if _, err := s.Grant(ctx, approverID, request.SubAdminID, request.LandingPageID); err != nil && !errors.Is(err, ErrAlreadyGranted) {
		return nil, err
	}

	return request, nil
}

// RejectRequest requires a reason.
func (s *Service) RejectRequest(ctx context.Context, rejecterID, requestID int64, reason string) (*AccessRequest, error) {
	if len(strings.TrimSpace(reason)) < 5 {
		return nil, ErrReasonRequired
	}

	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if request.Status != RequestPending {
		return nil, ErrRequestNotPending
	}

	now := time.Now()
	request.Status = RequestRejected
	request.RejectedBy = &rejecterID
	request.RejectedAt = &now
	request.RejectionReason = strings.TrimSpace(reason)
	if err := s.requests.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// DeleteRequest is allowed for the owning sub-admin and for super admins.
func (s *Service) DeleteRequest(ctx context.Context, callerID int64, callerRole auth.Role, requestID int64) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if callerRole != auth.RoleSuperAdmin && request.SubAdminID != callerID {
		return ErrRequestNotFound
	}

	return s.requests.DeleteRequest(ctx, requestID)
}
