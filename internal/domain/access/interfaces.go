package access

import (
	"context"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/domain/landing"
)

// AccessRepository is the grant data access needed by the service.
type AccessRepository interface {
	CreateAccess(ctx context.Context, a *AdminAccess) error
	GetAccessByID(ctx context.Context, id int64) (*AdminAccess, error)
	GetAccessByPair(ctx context.Context, subAdminID, landingPageID int64) (*AdminAccess, error)
	UpdateAccess(ctx context.Context, a *AdminAccess) error
	DeactivateActiveForSubAdmin(ctx context.Context, subAdminID int64) error
	ListAll(ctx context.Context) ([]AccessView, error)
	ListBySubAdmin(ctx context.Context, subAdminID int64) ([]AccessView, error)
	ListByLandingPage(ctx context.Context, landingPageID int64) ([]AccessView, error)
}

// RequestRepository is the access request data access needed by the service.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req *AccessRequest) error
	GetRequestByID(ctx context.Context, id int64) (*AccessRequest, error)
	UpdateRequest(ctx context.Context, req *AccessRequest) error
	DeleteRequest(ctx context.Context, id int64) error
	HasOpenRequest(ctx context.Context, subAdminID, landingPageID int64) (bool, error)
	ListRequests(ctx context.Context, subAdminID int64, status *RequestStatus) ([]AccessRequest, error)
}

// UserReader resolves users for grant validation.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}

// PageReader resolves landing pages for grant validation.
type PageReader interface {
	GetByID(ctx context.Context, id int64) (*landing.LandingPage, error)
}
