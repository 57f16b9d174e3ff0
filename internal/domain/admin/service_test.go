package admin

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"leadcapture/internal/domain/auth"
)

type mockUserStore struct {
	users   map[int64]*auth.User
	nextID  int64
	exists  bool
	deleted []int64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[int64]*auth.User{}, nextID: 1}
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists, nil
}

func (m *mockUserStore) Create(ctx context.Context, u *auth.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, u *auth.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUserStore) ListByRole(ctx context.Context, role auth.Role, status *auth.Status, page, limit int) ([]auth.User, int, error) {
	var out []auth.User
	for _, u := range m.users {
		if u.Role != role {
			continue
		}
		if status != nil && u.Status != *status {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

type mockAccessManager struct {
	reassigned []int64
	lastTarget *int64
}

func (m *mockAccessManager) Reassign(ctx context.Context, grantedBy, subAdminID int64, newLandingPageID *int64) error {
	m.reassigned = append(m.reassigned, subAdminID)
	m.lastTarget = newLandingPageID
	return nil
}

type mockGrantHistory struct {
	pageIDs []int64
	cleaned []int64
}

func (m *mockGrantHistory) PageIDsEverGranted(ctx context.Context, subAdminID int64) ([]int64, error) {
	return m.pageIDs, nil
}

func (m *mockGrantHistory) DeleteAccessForSubAdmin(ctx context.Context, subAdminID int64) error {
	m.cleaned = append(m.cleaned, subAdminID)
	return nil
}

type mockLeadCounter struct {
	count int
}

func (m *mockLeadCounter) CountByLandingPages(ctx context.Context, landingPageIDs []int64) (int, error) {
	return m.count, nil
}

func pendingSubAdmin(id int64) *auth.User {
	return &auth.User{ID: id, Role: auth.RoleSubAdmin, Status: auth.StatusPending, Email: "sub@example.com"}
}

func newTestService() (*Service, *mockUserStore, *mockAccessManager, *mockGrantHistory, *mockLeadCounter) {
	users := newMockUserStore()
	access := &mockAccessManager{}
	grants := &mockGrantHistory{}
	leads := &mockLeadCounter{}
	return NewService(users, access, grants, leads), users, access, grants, leads
}

func TestApproveUser_Success(t *testing.T) {
	svc, users, _, _, _ := newTestService()
	users.users[10] = pendingSubAdmin(10)

	user, err := svc.ApproveUser(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if user.Status != auth.StatusApproved {
		t.Fatalf("expected approved, got %s", user.Status)
	}
	if user.ApprovedBy == nil || *user.ApprovedBy != 1 || user.ApprovedAt == nil {
		t.Fatalf("expected approver recorded, got %+v", user)
	}
}

func TestApproveUser_TerminalStates(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	u := pendingSubAdmin(10)
	u.Status = auth.StatusApproved
	users.users[10] = u
	if _, err := svc.ApproveUser(context.Background(), 1, 10); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided for approved user, got %v", err)
	}

	u.Status = auth.StatusRejected
	if _, err := svc.ApproveUser(context.Background(), 1, 10); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided for rejected user, got %v", err)
	}

	users.users[20] = &auth.User{ID: 20, Role: auth.RoleSuperAdmin}
	if _, err := svc.ApproveUser(context.Background(), 1, 20); !errors.Is(err, ErrNotSubAdmin) {
		t.Fatalf("expected ErrNotSubAdmin, got %v", err)
	}

	if _, err := svc.ApproveUser(context.Background(), 1, 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRejectUser_ReasonOptional(t *testing.T) {
	svc, users, _, _, _ := newTestService()
	users.users[10] = pendingSubAdmin(10)

	user, err := svc.RejectUser(context.Background(), 1, 10, "")
	if err != nil {
		t.Fatalf("expected rejection without a reason to succeed, got %v", err)
	}
	if user.Status != auth.StatusRejected || user.RejectedAt == nil {
		t.Fatalf("expected rejection recorded, got %+v", user)
	}
	if user.RejectionReason != "" {
		t.Fatalf("expected empty reason, got %q", user.RejectionReason)
	}
	if user.ApprovedBy == nil || *user.ApprovedBy != 1 {
		t.Fatalf("expected decider recorded, got %+v", user.ApprovedBy)
	}
}

func TestRejectUser_ReasonTrimmed(t *testing.T) {
	svc, users, _, _, _ := newTestService()
	users.users[10] = pendingSubAdmin(10)

	user, err := svc.RejectUser(context.Background(), 1, 10, "  incomplete company details  ")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if user.Status != auth.StatusRejected {
		t.Fatalf("expected rejected, got %s", user.Status)
	}
	if user.RejectionReason != "incomplete company details" || user.RejectedAt == nil {
		t.Fatalf("expected rejection recorded, got %+v", user)
	}
}

func TestCreateSubAdmin_ImmediatelyApproved(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	user, err := svc.CreateSubAdmin(context.Background(), 1, CreateSubAdminRequest{
		Name:        "Direct Hire",
		Email:       "Direct@Example.com",
		Password:    "secret123",
		CompanyName: "Acme",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if user.Status != auth.StatusApproved {
		t.Fatalf("expected approved on creation, got %s", user.Status)
	}
	if user.ApprovedBy == nil || *user.ApprovedBy != 1 {
		t.Fatalf("expected creator recorded as approver, got %+v", user)
	}
	if user.Email != "direct@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
}

func TestCreateSubAdmin_DuplicateEmail(t *testing.T) {
	svc, users, _, _, _ := newTestService()
	users.exists = true

	_, err := svc.CreateSubAdmin(context.Background(), 1, CreateSubAdminRequest{
		Name:        "Dup",
		Email:       "dup@example.com",
		Password:    "secret123",
		CompanyName: "Acme",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUpdateSubAdmin_Reassigns(t *testing.T) {
	svc, users, access, _, _ := newTestService()
	u := pendingSubAdmin(10)
	u.Status = auth.StatusApproved
	users.users[10] = u

	target := int64(5)
	if _, err := svc.UpdateSubAdmin(context.Background(), 1, 10, UpdateSubAdminRequest{LandingPageID: &target}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(access.reassigned) != 1 || access.lastTarget == nil || *access.lastTarget != 5 {
		t.Fatalf("expected reassignment to page 5, got %v %v", access.reassigned, access.lastTarget)
	}

	// zero clears all active grants
	zero := int64(0)
	if _, err := svc.UpdateSubAdmin(context.Background(), 1, 10, UpdateSubAdminRequest{LandingPageID: &zero}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if access.lastTarget != nil {
		t.Fatalf("expected nil target for clear, got %v", access.lastTarget)
	}
}

func TestDeleteSubAdmin_GuardedByLeads(t *testing.T) {
	svc, users, _, grants, leads := newTestService()
	u := pendingSubAdmin(10)
	u.Status = auth.StatusApproved
	users.users[10] = u
	grants.pageIDs = []int64{100}
	leads.count = 7

	err := svc.DeleteSubAdmin(context.Background(), 10)
	if !errors.Is(err, ErrHasLeads) {
		t.Fatalf("expected ErrHasLeads, got %v", err)
	}
	if len(users.deleted) != 0 || len(grants.cleaned) != 0 {
		t.Fatalf("nothing may be deleted while leads exist")
	}
}

func TestDeleteSubAdmin_Clean(t *testing.T) {
	svc, users, _, grants, _ := newTestService()
	u := pendingSubAdmin(10)
	u.Status = auth.StatusApproved
	users.users[10] = u
	grants.pageIDs = []int64{100}

	if err := svc.DeleteSubAdmin(context.Background(), 10); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(grants.cleaned) != 1 || grants.cleaned[0] != 10 {
		t.Fatalf("expected grant history removed, got %v", grants.cleaned)
	}
	if len(users.deleted) != 1 || users.deleted[0] != 10 {
		t.Fatalf("expected user deleted, got %v", users.deleted)
	}
}
