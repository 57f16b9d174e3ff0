package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/domain/landing"
)

type mockAccessRepo struct {
	byPair      map[[2]int64]*AdminAccess
	byID        map[int64]*AdminAccess
	nextID      int64
	deactivated []int64
}

func newMockAccessRepo() *mockAccessRepo {
	return &mockAccessRepo{
		byPair: map[[2]int64]*AdminAccess{},
		byID:   map[int64]*AdminAccess{},
		nextID: 1,
	}
}

func (m *mockAccessRepo) add(a *AdminAccess) *AdminAccess {
	if a.ID == 0 {
		a.ID = m.nextID
		m.nextID++
	}
	m.byID[a.ID] = a
	m.byPair[[2]int64{a.SubAdminID, a.LandingPageID}] = a
	return a
}

func (m *mockAccessRepo) CreateAccess(ctx context.Context, a *AdminAccess) error {
	m.add(a)
	return nil
}

func (m *mockAccessRepo) GetAccessByID(ctx context.Context, id int64) (*AdminAccess, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockAccessRepo) GetAccessByPair(ctx context.Context, subAdminID, landingPageID int64) (*AdminAccess, error) {
	a, ok := m.byPair[[2]int64{subAdminID, landingPageID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockAccessRepo) UpdateAccess(ctx context.Context, a *AdminAccess) error {
	m.add(a)
	return nil
}

func (m *mockAccessRepo) DeactivateActiveForSubAdmin(ctx context.Context, subAdminID int64) error {
	m.deactivated = append(m.deactivated, subAdminID)
	for _, a := range m.byID {
		if a.SubAdminID == subAdminID && a.Status == GrantActive {
			a.Status = GrantInactive
		}
	}
	return nil
}

func (m *mockAccessRepo) ListAll(ctx context.Context) ([]AccessView, error)        { return nil, nil }
func (m *mockAccessRepo) ListBySubAdmin(context.Context, int64) ([]AccessView, error) {
	return nil, nil
}
func (m *mockAccessRepo) ListByLandingPage(context.Context, int64) ([]AccessView, error) {
	return nil, nil
}

type mockRequestRepo struct {
	byID    map[int64]*AccessRequest
	nextID  int64
	open    bool
	deleted []int64
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{byID: map[int64]*AccessRequest{}, nextID: 1}
}

func (m *mockRequestRepo) CreateRequest(ctx context.Context, req *AccessRequest) error {
	req.ID = m.nextID
	m.nextID++
	m.byID[req.ID] = req
	return nil
}

func (m *mockRequestRepo) GetRequestByID(ctx context.Context, id int64) (*AccessRequest, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockRequestRepo) UpdateRequest(ctx context.Context, req *AccessRequest) error {
	m.byID[req.ID] = req
	return nil
}

func (m *mockRequestRepo) DeleteRequest(ctx context.Context, id int64) error {
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRequestRepo) HasOpenRequest(ctx context.Context, subAdminID, landingPageID int64) (bool, error) {
	return m.open, nil
}

func (m *mockRequestRepo) ListRequests(context.Context, int64, *RequestStatus) ([]AccessRequest, error) {
	return nil, nil
}

type mockUserReader struct {
	users map[int64]*auth.User
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type mockPageReader struct {
	pages map[int64]*landing.LandingPage
}

func (m *mockPageReader) GetByID(ctx context.Context, id int64) (*landing.LandingPage, error) {
	p, ok := m.pages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func approvedSubAdmin(id int64) *auth.User {
	return &auth.User{ID: id, Role: auth.RoleSubAdmin, Status: auth.StatusApproved}
}

func newTestService() (*Service, *mockAccessRepo, *mockRequestRepo, *mockUserReader, *mockPageReader) {
	accesses := newMockAccessRepo()
	requests := newMockRequestRepo()
	users := &mockUserReader{users: map[int64]*auth.User{10: approvedSubAdmin(10)}}
	pages := &mockPageReader{pages: map[int64]*landing.LandingPage{100: {ID: 100, Status: landing.StatusActive}}}
	return NewService(accesses, requests, users, pages), accesses, requests, users, pages
}

func TestGrant_CreatesActiveRecord(t *testing.T) {
	svc, accesses, _, _, _ := newTestService()

	grant, err := svc.Grant(context.Background(), 1, 10, 100)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if grant.Status != GrantActive {
		t.Fatalf("expected active grant, got %s", grant.Status)
	}
	if grant.GrantedBy != 1 {
		t.Fatalf("expected granter recorded, got %d", grant.GrantedBy)
	}
	if len(accesses.byID) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(accesses.byID))
	}
}

func TestGrant_ActivePairConflicts(t *testing.T) {
	svc, accesses, _, _, _ := newTestService()
	accesses.add(&AdminAccess{SubAdminID: 10, LandingPageID: 100, Status: GrantActive})

	_, err := svc.Grant(context.Background(), 1, 10, 100)
	if !errors.Is(err, ErrAlreadyGranted) {
		t.Fatalf("expected ErrAlreadyGranted, got %v", err)
	}
}

func TestGrant_ReactivatesRevokedInPlace(t *testing.T) {
	svc, accesses, _, _, _ := newTestService()

	revokedBy := int64(2)
	revokedAt := time.Now().Add(-time.Hour)
	old := accesses.add(&AdminAccess{
		SubAdminID:    10,
		LandingPageID: 100,
		Status:        GrantRevoked,
		RevokedBy:     &revokedBy,
		RevokedAt:     &revokedAt,
	})

	grant, err := svc.Grant(context.Background(), 1, 10, 100)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	// reuse, never a second row for the same pair
	if grant.ID != old.ID {
		t.Fatalf("expected record %d reused, got %d", old.ID, grant.ID)
	}
	if len(accesses.byID) != 1 {
		t.Fatalf("expected exactly one record per pair, got %d", len(accesses.byID))
	}
	if grant.Status != GrantActive || grant.RevokedAt != nil || grant.RevokedBy != nil {
		t.Fatalf("expected revoke metadata cleared, got %+v", grant)
	}
}

func TestGrant_TargetValidation(t *testing.T) {
	svc, _, _, users, _ := newTestService()

	users.users[20] = &auth.User{ID: 20, Role: auth.RoleSuperAdmin}
	if _, err := svc.Grant(context.Background(), 1, 20, 100); !errors.Is(err, ErrNotSubAdmin) {
		t.Fatalf("expected ErrNotSubAdmin, got %v", err)
	}

	users.users[21] = &auth.User{ID: 21, Role: auth.RoleSubAdmin, Status: auth.StatusPending}
	if _, err := svc.Grant(context.Background(), 1, 21, 100); !errors.Is(err, ErrSubAdminNotApproved) {
		t.Fatalf("expected ErrSubAdminNotApproved, got %v", err)
	}

	if _, err := svc.Grant(context.Background(), 1, 10, 999); !errors.Is(err, ErrPageMissing) {
		t.Fatalf("expected ErrPageMissing, got %v", err)
	}
}

func TestRevoke_KeepsRecord(t *testing.T) {
	svc, accesses, _, _, _ := newTestService()
	grant := accesses.add(&AdminAccess{SubAdminID: 10, LandingPageID: 100, Status: GrantActive})

	revoked, err := svc.Revoke(context.Background(), 1, grant.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if revoked.Status != GrantRevoked || revoked.RevokedAt == nil || revoked.RevokedBy == nil {
		t.Fatalf("expected revoke metadata set, got %+v", revoked)
	}
	if len(accesses.byID) != 1 {
		t.Fatalf("revoke must never delete the record")
	}

	if _, err := svc.Revoke(context.Background(), 1, grant.ID); !errors.Is(err, ErrAlreadyRevoked) {
		t.Fatalf("expected ErrAlreadyRevoked, got %v", err)
	}
}

func TestReassign_DeactivatesThenGrants(t *testing.T) {
	svc, accesses, _, _, pages := newTestService()
	pages.pages[101] = &landing.LandingPage{ID: 101, Status: landing.StatusActive}
	old := accesses.add(&AdminAccess{SubAdminID: 10, LandingPageID: 100, Status: GrantActive})

	newPage := int64(101)
	if err := svc.Reassign(context.Background(), 1, 10, &newPage); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if old.Status == GrantActive {
		t.Fatalf("expected old grant deactivated")
	}
	fresh, err := accesses.GetAccessByPair(context.Background(), 10, 101)
	if err != nil || fresh.Status != GrantActive {
		t.Fatalf("expected new active grant, got %+v err=%v", fresh, err)
	}
}

func TestCreateRequest_DuplicateOpenRejected(t *testing.T) {
	svc, _, requests, _, _ := newTestService()
	requests.open = true

	_, err := svc.CreateRequest(context.Background(), 10, CreateAccessRequestRequest{LandingPageID: 100})
	if !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestApproveRequest_GrantsAccess(t *testing.T) {
	svc, accesses, requests, _, _ := newTestService()
	req := &AccessRequest{SubAdminID: 10, LandingPageID: 100, Status: RequestPending}
	requests.CreateRequest(context.Background(), req)

	approved, err := svc.ApproveRequest(context.Background(), 1, req.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if approved.Status != RequestApproved || approved.ApprovedBy == nil {
		t.Fatalf("expected approval recorded, got %+v", approved)
	}

	grant, err := accesses.GetAccessByPair(context.Background(), 10, 100)
	if err != nil || grant.Status != GrantActive {
		t.Fatalf("expected grant created on approval, got %+v err=%v", grant, err)
	}

	// a second decision is a conflict
	if _, err := svc.ApproveRequest(context.Background(), 1, req.ID); !errors.Is(err, ErrRequestNotPending) {
		t.Fatalf("expected ErrRequestNotPending, got %v", err)
	}
}

func TestRejectRequest_RequiresReason(t *testing.T) {
	svc, _, requests, _, _ := newTestService()
	req := &AccessRequest{SubAdminID: 10, LandingPageID: 100, Status: RequestPending}
	requests.CreateRequest(context.Background(), req)

	if _, err := svc.RejectRequest(context.Background(), 1, req.ID, "  no "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	rejected, err := svc.RejectRequest(context.Background(), 1, req.ID, "page is being retired")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rejected.Status != RequestRejected || rejected.RejectionReason == "" {
		t.Fatalf("expected rejection recorded, got %+v", rejected)
	}
}

func TestDeleteRequest_OwnershipEnforced(t *testing.T) {
	svc, _, requests, _, _ := newTestService()
	req := &AccessRequest{SubAdminID: 10, LandingPageID: 100, Status: RequestPending}
	requests.CreateRequest(context.Background(), req)

	// another sub-admin cannot see it
	err := svc.DeleteRequest(context.Background(), 11, auth.RoleSubAdmin, req.ID)
	if !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound for foreign request, got %v", err)
	}

	if err := svc.DeleteRequest(context.Background(), 10, auth.RoleSubAdmin, req.ID); err != nil {
		t.Fatalf("expected owner delete to succeed, got %v", err)
	}
}
