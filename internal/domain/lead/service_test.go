package lead

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/domain/landing"
)

type mockLeadRepo struct {
	byID       map[int64]*Lead
	nextID     int64
	listCalled bool
	lastScope  []int64
}

func newMockLeadRepo() *mockLeadRepo {
	return &mockLeadRepo{byID: map[int64]*Lead{}, nextID: 1}
}

func (m *mockLeadRepo) Create(ctx context.Context, l *Lead) error {
	l.ID = m.nextID
	m.nextID++
	l.CreatedAt = time.Now()
	m.byID[l.ID] = l
	return nil
}

func (m *mockLeadRepo) GetByID(ctx context.Context, id int64) (*Lead, error) {
	l, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (m *mockLeadRepo) Update(ctx context.Context, l *Lead) error {
	m.byID[l.ID] = l
	return nil
}

func (m *mockLeadRepo) Delete(ctx context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func (m *mockLeadRepo) List(ctx context.Context, q ListQuery, scopeIDs []int64) ([]Lead, int, error) {
	m.listCalled = true
	m.lastScope = scopeIDs
	var out []Lead
	for _, l := range m.byID {
		out = append(out, *l)
	}
	return out, len(out), nil
}

func (m *mockLeadRepo) ListAll(ctx context.Context, q ListQuery, scopeIDs []int64) ([]Lead, error) {
	leads, _, err := m.List(ctx, q, scopeIDs)
	return leads, err
}

func (m *mockLeadRepo) CountsByStatus(ctx context.Context, q ListQuery, scopeIDs []int64) (map[Status]int, error) {
	counts := map[Status]int{}
	for _, l := range m.byID {
		counts[l.Status]++
	}
	return counts, nil
}

func (m *mockLeadRepo) CountsByDay(ctx context.Context, q ListQuery, scopeIDs []int64, since time.Time) ([]DayCount, error) {
	return nil, nil
}

func (m *mockLeadRepo) Recent(ctx context.Context, scopeIDs []int64, limit int) ([]Lead, error) {
	return nil, nil
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

type mockAccessReader struct {
	pageIDs map[int64][]int64
	called  bool
}

func (m *mockAccessReader) ActivePageIDs(ctx context.Context, subAdminID int64) ([]int64, error) {
	m.called = true
	return m.pageIDs[subAdminID], nil
}

type mockPublisher struct {
	published []*Lead
}

func (m *mockPublisher) PublishLead(l *Lead) {
	m.published = append(m.published, l)
}

func activePage() *landing.LandingPage {
	return &landing.LandingPage{
		ID:     1,
		Name:   "Contact",
		Status: landing.StatusActive,
		IncludeDefaultFields: landing.DefaultFieldSet{
			"firstName": true,
			"lastName":  true,
			"email":     true,
		},
		FormFields: landing.FormFields{
			{Name: "budget", Label: "Budget", Type: landing.FieldSelect, Required: true, Order: 1},
		},
	}
}

func newTestService() (*Service, *mockLeadRepo, *mockPageReader, *mockAccessReader, *mockPublisher) {
	leads := newMockLeadRepo()
	pages := &mockPageReader{pages: map[int64]*landing.LandingPage{1: activePage()}}
	accesses := &mockAccessReader{pageIDs: map[int64][]int64{}}
	feed := &mockPublisher{}
	return NewService(leads, pages, accesses, feed), leads, pages, accesses, feed
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"landingPageId": float64(1),
		"firstName":     "Jane",
		"lastName":      "Doe",
		"email":         "Jane@Example.com",
		"budget":        "large",
		"utmSource":     "google",
	}
}

func TestIngest_Success(t *testing.T) {
	svc, leads, _, _, feed := newTestService()

	lead, err := svc.Ingest(context.Background(), validPayload(), "203.0.113.9", "test-agent")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if lead.Status != StatusNew {
		t.Fatalf("expected status new, got %s", lead.Status)
	}
	if lead.Source != "landing_page" {
		t.Fatalf("expected source landing_page, got %s", lead.Source)
	}
	if lead.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", lead.Email)
	}
	if lead.DynamicFields["budget"] != "large" || lead.DynamicFields["utmSource"] != "google" {
		t.Fatalf("expected dynamic fields captured, got %v", lead.DynamicFields)
	}
	if lead.IPAddress != "203.0.113.9" || lead.UserAgent != "test-agent" {
		t.Fatalf("expected request metadata captured, got %+v", lead)
	}
	if len(leads.byID) != 1 {
		t.Fatalf("expected one persisted lead, got %d", len(leads.byID))
	}
	if len(feed.published) != 1 {
		t.Fatalf("expected lead published to feed")
	}
}

func TestIngest_PageIDVariants(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	// string ID is accepted
	payload := validPayload()
	payload["landingPageId"] = "1"
	if _, err := svc.Ingest(context.Background(), payload, "", ""); err != nil {
		t.Fatalf("expected string page ID accepted, got %v", err)
	}

	// missing ID is a validation failure
	payload = validPayload()
	delete(payload, "landingPageId")
	if _, err := svc.Ingest(context.Background(), payload, "", ""); !errors.Is(err, ErrInvalidLandingPage) {
		t.Fatalf("expected ErrInvalidLandingPage, got %v", err)
	}

	// unknown ID is indistinguishable from an invalid one
	payload = validPayload()
	payload["landingPageId"] = float64(999)
	if _, err := svc.Ingest(context.Background(), payload, "", ""); !errors.Is(err, ErrInvalidLandingPage) {
		t.Fatalf("expected ErrInvalidLandingPage, got %v", err)
	}
}

func TestIngest_InactivePageRejected(t *testing.T) {
	svc, leads, pages, _, _ := newTestService()
	pages.pages[1].Status = landing.StatusInactive

	_, err := svc.Ingest(context.Background(), validPayload(), "", "")
	if !errors.Is(err, ErrInvalidLandingPage) {
		t.Fatalf("expected ErrInvalidLandingPage, got %v", err)
	}
	if len(leads.byID) != 0 {
		t.Fatalf("no lead may be persisted for an inactive page")
	}
}

func TestIngest_ValidationFailureIsAtomic(t *testing.T) {
	svc, leads, _, _, feed := newTestService()

	payload := validPayload()
	delete(payload, "budget")
	delete(payload, "email")

	_, err := svc.Ingest(context.Background(), payload, "", "")

	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	found := map[string]bool{}
	for _, e := range subErr.Errors {
		found[e] = true
	}
	if !found["Email is required"] || !found["Budget is required"] {
		t.Fatalf("expected both field errors, got %v", subErr.Errors)
	}
	if len(leads.byID) != 0 || len(feed.published) != 0 {
		t.Fatalf("failed validation must persist and publish nothing")
	}
}

func TestList_EmptyGrantsShortCircuit(t *testing.T) {
	svc, leads, _, _, _ := newTestService()

	views, total, err := svc.List(context.Background(), 10, auth.RoleSubAdmin, ListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if total != 0 || len(views) != 0 {
		t.Fatalf("expected empty result, got %d/%d", len(views), total)
	}
	if leads.listCalled {
		t.Fatalf("lead storage must not be queried with an empty scope")
	}
}

func TestList_SuperAdminUnscoped(t *testing.T) {
	svc, leads, _, accesses, _ := newTestService()
	leads.Create(context.Background(), &Lead{LandingPageID: 1, Status: StatusNew})

	_, total, err := svc.List(context.Background(), 1, auth.RoleSuperAdmin, ListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one lead, got %d", total)
	}
	if leads.lastScope != nil {
		t.Fatalf("super admin queries must be unscoped, got %v", leads.lastScope)
	}
	if accesses.called {
		t.Fatalf("grants must not be consulted for super admins")
	}
}

func TestGetByID_ScopeEnforced(t *testing.T) {
	svc, leads, _, accesses, _ := newTestService()
	leads.Create(context.Background(), &Lead{LandingPageID: 1, Status: StatusNew})

	// out of scope
	if _, err := svc.GetByID(context.Background(), 10, auth.RoleSubAdmin, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// in scope
	accesses.pageIDs[10] = []int64{1}
	view, err := svc.GetByID(context.Background(), 10, auth.RoleSubAdmin, 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if view.ID != 1 {
		t.Fatalf("expected lead 1, got %d", view.ID)
	}

	// unknown lead
	if _, err := svc.GetByID(context.Background(), 1, auth.RoleSuperAdmin, 99); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, leads, _, _, _ := newTestService()
	leads.Create(context.Background(), &Lead{LandingPageID: 1, Status: StatusNew})

	if _, err := svc.UpdateStatus(context.Background(), 1, auth.RoleSuperAdmin, 1, Status("bogus")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	lead, err := svc.UpdateStatus(context.Background(), 1, auth.RoleSuperAdmin, 1, StatusQualified)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if lead.Status != StatusQualified {
		t.Fatalf("expected qualified, got %s", lead.Status)
	}
}

func TestUpdateDetails_KeepsDynamicFields(t *testing.T) {
	svc, leads, _, _, _ := newTestService()
	leads.Create(context.Background(), &Lead{
		LandingPageID: 1,
		FirstName:     "Jane",
		DynamicFields: JSONMap{"budget": "large"},
		Status:        StatusNew,
	})

	name := "Janet"
	lead, err := svc.UpdateDetails(context.Background(), 1, auth.RoleSuperAdmin, 1, UpdateDetailsRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if lead.FirstName != "Janet" {
		t.Fatalf("expected first name updated, got %q", lead.FirstName)
	}
	if lead.DynamicFields["budget"] != "large" {
		t.Fatalf("extension map must survive detail updates, got %v", lead.DynamicFields)
	}
}

func TestExportLeads_LabelCasedColumns(t *testing.T) {
	svc, leads, _, _, _ := newTestService()
	leads.Create(context.Background(), &Lead{
		LandingPageID: 1,
		FirstName:     "Jane",
		Email:         "jane@example.com",
		Status:        StatusNew,
		Source:        "landing_page",
		DynamicFields: JSONMap{"howFoundUs": "search", "utm_source": "google", "interests": []string{"a", "b"}},
	})

	export, err := svc.ExportLeads(context.Background(), 1, auth.RoleSuperAdmin, ListQuery{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	headerSet := map[string]bool{}
	for _, h := range export.Headers {
		headerSet[h] = true
	}
	for _, want := range []string{"First Name", "Email", "How Found Us", "Utm Source", "Interests"} {
		if !headerSet[want] {
			t.Fatalf("expected header %q in %v", want, export.Headers)
		}
	}

	if len(export.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(export.Rows))
	}
	row := export.Rows[0]
	if row["How Found Us"] != "search" {
		t.Fatalf("expected dynamic value mapped, got %q", row["How Found Us"])
	}
	if row["Interests"] != "a, b" {
		t.Fatalf("expected joined multi-value, got %q", row["Interests"])
	}
}

func TestLabelCase(t *testing.T) {
	cases := map[string]string{
		"howFoundUs":   "How Found Us",
		"utm_source":   "Utm Source",
		"budget":       "Budget",
		"company-size": "Company Size",
	}
	for in, want := range cases {
		if got := labelCase(in); got != want {
			t.Fatalf("labelCase(%q) = %q, want %q", in, got, want)
		}
	}
}
