package lead

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"leadcapture/internal/domain/auth"
)

const (
	statsWindowDays  = 30
	recentLeadsLimit = 5
)

// Service handles lead ingestion, querying and reporting.
type Service struct {
	leads    LeadRepository
	pages    PageReader
	accesses AccessReader
	feed     Publisher
}

func NewService(leads LeadRepository, pages PageReader, accesses AccessReader, feed Publisher) *Service {
	return &Service{leads: leads, pages: pages, accesses: accesses, feed: feed}
}

// Ingest validates a raw public submission against the landing page's live
// form contract and persists the lead. Validation is schema-directed but
// not schema-closed: undeclared payload keys pass through into the
// extension map. There is no partial success; the full lead is created or
// nothing is.
func (s *Service) Ingest(ctx context.Context, payload map[string]interface{}, ip, userAgent string) (*Lead, error) {
	pageID, ok := payloadPageID(payload)
	if !ok {
		return nil, ErrInvalidLandingPage
	}

	page, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLandingPage
		}
		return nil, err
	}
	// Only active pages accept submissions; drafts and disabled pages are
	// terminal here.
	if !page.IsActive() {
		return nil, ErrInvalidLandingPage
	}

	sub, verrs := page.ParseSubmission(payload)
	if verrs != nil {
		return nil, &SubmissionError{Errors: verrs}
	}

	lead := &Lead{
		LandingPageID: page.ID,
		FirstName:     sub.FirstName,
		LastName:      sub.LastName,
		Email:         sub.Email,
		Phone:         sub.Phone,
		Company:       sub.Company,
		Message:       sub.Message,
		DynamicFields: JSONMap(sub.Dynamic),
		Status:        StatusNew,
		Source:        "landing_page",
		IPAddress:     ip,
		UserAgent:     userAgent,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.PublishLead(lead)
	}

	return lead, nil
}

// scope resolves the page set an actor may see. Super admins are
// unscoped (nil). An empty non-nil slice means no visible pages.
func (s *Service) scope(ctx context.Context, userID int64, role auth.Role) ([]int64, error) {
	if role == auth.RoleSuperAdmin {
		return nil, nil
	}
	ids, err := s.accesses.ActivePageIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// List is role-scoped: a sub-admin with no active grants gets an empty
// result without touching lead storage.
func (s *Service) List(ctx context.Context, userID int64, role auth.Role, q ListQuery) ([]LeadView, int, error) {
	scopeIDs, err := s.scope(ctx, userID, role)
	if err != nil {
		return nil, 0, err
	}
	if scopeIDs != nil && len(scopeIDs) == 0 {
		return []LeadView{}, 0, nil
	}

	leads, total, err := s.leads.List(ctx, q, scopeIDs)
	if err != nil {
		return nil, 0, err
	}

	views := make([]LeadView, len(leads))
	for i, l := range leads {
		views[i] = NewLeadView(l)
	}
	return views, total, nil
}

// GetByID access-checks the lead's landing page for sub-admins.
func (s *Service) GetByID(ctx context.Context, userID int64, role auth.Role, id int64) (*LeadView, error) {
	lead, err := s.loadAuthorized(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	view := NewLeadView(*lead)
	return &view, nil
}

func (s *Service) loadAuthorized(ctx context.Context, userID int64, role auth.Role, id int64) (*Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	if role != auth.RoleSuperAdmin {
		scopeIDs, err := s.accesses.ActivePageIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !containsID(scopeIDs, lead.LandingPageID) {
			return nil, ErrForbidden
		}
	}

	return lead, nil
}

func (s *Service) UpdateStatus(ctx context.Context, userID int64, role auth.Role, id int64, status Status) (*Lead, error) {
	if !IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	lead, err := s.loadAuthorized(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}

	lead.Status = status
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateDetails mutates fixed attributes only; dynamicFields stays intact.
func (s *Service) UpdateDetails(ctx context.Context, userID int64, role auth.Role, id int64, req UpdateDetailsRequest) (*Lead, error) {
	lead, err := s.loadAuthorized(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		lead.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		lead.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		lead.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		lead.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		lead.Company = strings.TrimSpace(*req.Company)
	}
	if req.Message != nil {
		lead.Message = strings.TrimSpace(*req.Message)
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Delete is super-admin only; the role gate lives on the route.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.leads.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadNotFound
		}
		return err
	}
	return s.leads.Delete(ctx, id)
}

// Stats aggregates per-status counts, a trailing 30-day histogram and the
// most recent leads, scoped identically to List.
func (s *Service) Stats(ctx context.Context, userID int64, role auth.Role, q ListQuery) (*StatsOverview, error) {
	scopeIDs, err := s.scope(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	overview := &StatsOverview{
		ByStatus: map[Status]int{},
		ByDay:    []DayCount{},
		Recent:   []LeadView{},
	}
	if scopeIDs != nil && len(scopeIDs) == 0 {
		return overview, nil
	}

	counts, err := s.leads.CountsByStatus(ctx, q, scopeIDs)
	if err != nil {
		return nil, err
	}
	for status, count := range counts {
		overview.ByStatus[status] = count
		overview.Total += count
	}

	since := time.Now().AddDate(0, 0, -statsWindowDays)
	byDay, err := s.leads.CountsByDay(ctx, q, scopeIDs, since)
	if err != nil {
		return nil, err
	}
	if byDay != nil {
		overview.ByDay = byDay
	}

	recent, err := s.leads.Recent(ctx, scopeIDs, recentLeadsLimit)
	if err != nil {
		return nil, err
	}
	for _, l := range recent {
		overview.Recent = append(overview.Recent, NewLeadView(l))
	}

	return overview, nil
}

// ExportLeads flattens the filtered leads into label-cased rows for CSV or
// sheet generation. Fixed columns come first in a stable order; dynamic
// columns follow sorted by name.
func (s *Service) ExportLeads(ctx context.Context, userID int64, role auth.Role, q ListQuery) (*Export, error) {
	scopeIDs, err := s.scope(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if scopeIDs != nil && len(scopeIDs) == 0 {
		return &Export{Headers: exportFixedHeaders(), Rows: []map[string]string{}}, nil
	}

	leads, err := s.leads.ListAll(ctx, q, scopeIDs)
	if err != nil {
		return nil, err
	}

	dynamicKeys := map[string]bool{}
	for _, l := range leads {
		for k := range l.DynamicFields {
			dynamicKeys[k] = true
		}
	}
	sortedKeys := make([]string, 0, len(dynamicKeys))
	for k := range dynamicKeys {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	headers := exportFixedHeaders()
	for _, k := range sortedKeys {
		headers = append(headers, labelCase(k))
	}

	rows := make([]map[string]string, 0, len(leads))
	for _, l := range leads {
		row := map[string]string{
			"First Name": l.FirstName,
			"Last Name":  l.LastName,
			"Email":      l.Email,
			"Phone":      l.Phone,
			"Company":    l.Company,
			"Message":    l.Message,
			"Status":     string(l.Status),
			"Source":     l.Source,
			"Created At": l.CreatedAt.Format(time.RFC3339),
		}
		for _, k := range sortedKeys {
			row[labelCase(k)] = dynamicString(l.DynamicFields[k])
		}
		rows = append(rows, row)
	}

	return &Export{Headers: headers, Rows: rows}, nil
}

func exportFixedHeaders() []string {
	return []string{
		"First Name", "Last Name", "Email", "Phone", "Company", "Message",
		"Status", "Source", "Created At",
	}
}

func payloadPageID(payload map[string]interface{}) (int64, bool) {
	switch v := payload["landingPageId"].(type) {
	case float64:
		return int64(v), v > 0
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return id, err == nil && id > 0
	default:
		return 0, false
	}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func dynamicString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, dynamicString(item))
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// labelCase turns a field name like "howFoundUs" or "utm_source" into a
// display header like "How Found Us" / "Utm Source".
func labelCase(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
		}
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
