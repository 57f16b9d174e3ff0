package dashboard

import (
	"context"

	"leadcapture/internal/domain/access"
	"leadcapture/internal/domain/auth"
	"leadcapture/internal/domain/lead"
)

// LeadStats provides the role-scoped lead aggregates.
type LeadStats interface {
	Stats(ctx context.Context, userID int64, role auth.Role, q lead.ListQuery) (*lead.StatsOverview, error)
}

// PageCounter counts landing pages.
type PageCounter interface {
	Count(ctx context.Context) (int, error)
}

// UserCounter counts users per role.
type UserCounter interface {
	CountByRole(ctx context.Context, role auth.Role) (int, error)
	CountByRoleStatus(ctx context.Context, role auth.Role, status auth.Status) (int, error)
}

// AccessReader resolves grant scope and the open request queue size.
type AccessReader interface {
	ActivePageIDs(ctx context.Context, subAdminID int64) ([]int64, error)
	CountRequestsByStatus(ctx context.Context, status access.RequestStatus) (int, error)
}

// SuperAdminOverview is the global dashboard payload.
type SuperAdminOverview struct {
	LandingPages          int                 `json:"landingPages"`
	SubAdmins             int                 `json:"subAdmins"`
	PendingUsers          int                 `json:"pendingUsers"`
	PendingAccessRequests int                 `json:"pendingAccessRequests"`
	Leads                 *lead.StatsOverview `json:"leads"`
}

// SubAdminOverview is scoped to the caller's active grants.
type SubAdminOverview struct {
	AccessiblePages int                 `json:"accessiblePages"`
	Leads           *lead.StatsOverview `json:"leads"`
}

// Service composes per-domain aggregates into the dashboard reads.
type Service struct {
	leads    LeadStats
	pages    PageCounter
	users    UserCounter
	accesses AccessReader
}

func NewService(leads LeadStats, pages PageCounter, users UserCounter, accesses AccessReader) *Service {
	return &Service{leads: leads, pages: pages, users: users, accesses: accesses}
}

func (s *Service) SuperAdminOverview(ctx context.Context, userID int64) (*SuperAdminOverview, error) {
	pageCount, err := s.pages.Count(ctx)
	if err != nil {
		return nil, err
	}

	subAdmins, err := s.users.CountByRole(ctx, auth.RoleSubAdmin)
	if err != nil {
		return nil, err
	}

	pendingUsers, err := s.users.CountByRoleStatus(ctx, auth.RoleSubAdmin, auth.StatusPending)
	if err != nil {
		return nil, err
	}

	pendingRequests, err := s.accesses.CountRequestsByStatus(ctx, access.RequestPending)
	if err != nil {
		return nil, err
	}

	stats, err := s.leads.Stats(ctx, userID, auth.RoleSuperAdmin, lead.ListQuery{})
	if err != nil {
		return nil, err
	}

	return &SuperAdminOverview{
		LandingPages:          pageCount,
		SubAdmins:             subAdmins,
		PendingUsers:          pendingUsers,
		PendingAccessRequests: pendingRequests,
		Leads:                 stats,
	}, nil
}

func (s *Service) SubAdminOverview(ctx context.Context, userID int64) (*SubAdminOverview, error) {
	pageIDs, err := s.accesses.ActivePageIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.leads.Stats(ctx, userID, auth.RoleSubAdmin, lead.ListQuery{})
	if err != nil {
		return nil, err
	}

	return &SubAdminOverview{
		AccessiblePages: len(pageIDs),
		Leads:           stats,
	}, nil
}
