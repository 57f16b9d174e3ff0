package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"leadcapture/internal/domain/auth"
)

// Service contains the sub-admin lifecycle logic: the approval queue and
// direct account management by super admins.
type Service struct {
	users  UserStore
	access AccessManager
	grants GrantHistory
	leads  LeadCounter
}

func NewService(users UserStore, access AccessManager, grants GrantHistory, leads LeadCounter) *Service {
	return &Service{users: users, access: access, grants: grants, leads: leads}
}

// ListPendingUsers returns sub-admins awaiting a decision, newest first.
func (s *Service) ListPendingUsers(ctx context.Context, page, limit int) ([]auth.User, int, error) {
	status := auth.StatusPending
	return s.users.ListByRole(ctx, auth.RoleSubAdmin, &status, page, limit)
}

// ListSubAdmins returns sub-admins of any status, optionally filtered.
func (s *Service) ListSubAdmins(ctx context.Context, status *auth.Status, page, limit int) ([]auth.User, int, error) {
	return s.users.ListByRole(ctx, auth.RoleSubAdmin, status, page, limit)
}

func (s *Service) loadPendingSubAdmin(ctx context.Context, userID int64) (*auth.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != auth.RoleSubAdmin {
		return nil, ErrNotSubAdmin
	}
	// Approval and rejection are terminal; a second decision is a conflict,
	// not an overwrite.
	if user.Status != auth.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrAlreadyDecided, user.Status)
	}
	return user, nil
}

// ApproveUser moves a pending sub-admin to approved and records who decided.
func (s *Service) ApproveUser(ctx context.Context, approverID, userID int64) (*auth.User, error) {
	user, err := s.loadPendingSubAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.Status = auth.StatusApproved
	user.ApprovedBy = &approverID
	user.ApprovedAt = &now

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RejectUser moves a pending sub-admin to rejected. The reason is optional
// and stored verbatim (trimmed) when given.
func (s *Service) RejectUser(ctx context.Context, rejecterID, userID int64, reason string) (*auth.User, error) {
	user, err := s.loadPendingSubAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.Status = auth.StatusRejected
	user.ApprovedBy = &rejecterID
	user.RejectedAt = &now
	user.RejectionReason = strings.TrimSpace(reason)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSubAdmin provisions an account directly. Accounts created by a super
// admin are approved immediately and can log in right away.
func (s *Service) CreateSubAdmin(ctx context.Context, creatorID int64, req CreateSubAdminRequest) (*auth.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &auth.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         auth.RoleSubAdmin,
		Status:       auth.StatusApproved,
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Phone:        strings.TrimSpace(req.Phone),
		ApprovedBy:   &creatorID,
		ApprovedAt:   &now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) GetSubAdmin(ctx context.Context, userID int64) (*auth.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != auth.RoleSubAdmin {
		return nil, ErrNotSubAdmin
	}
	return user, nil
}

// UpdateSubAdmin applies partial profile changes and, when landingPageId is
// present, reassigns the active grants. The profile write and the grant
// moves are independent steps with no rollback.
func (s *Service) UpdateSubAdmin(ctx context.Context, callerID, userID int64, req UpdateSubAdminRequest) (*auth.User, error) {
	user, err := s.GetSubAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) != "" {
		user.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.LandingPageID != nil {
		target := req.LandingPageID
		if *target == 0 {
			target = nil
		}
		if err := s.access.Reassign(ctx, callerID, userID, target); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// DeleteSubAdmin removes the account and its grant history. Deletion is
// refused while leads exist under any page the sub-admin was ever granted,
// so lead attribution stays intact.
func (s *Service) DeleteSubAdmin(ctx context.Context, userID int64) error {
	if _, err := s.GetSubAdmin(ctx, userID); err != nil {
		return err
	}

	pageIDs, err := s.grants.PageIDsEverGranted(ctx, userID)
	if err != nil {
		return err
	}
	if len(pageIDs) > 0 {
		count, err := s.leads.CountByLandingPages(ctx, pageIDs)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d leads under granted pages", ErrHasLeads, count)
		}
	}

	if err := s.grants.DeleteAccessForSubAdmin(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}
