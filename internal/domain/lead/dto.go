package lead

import "time"

// ListQuery carries the filters of the lead list endpoints.
type ListQuery struct {
	Status        *Status
	LandingPageID *int64
	Search        string
	StartDate     *time.Time
	EndDate       *time.Time
	Page          int
	Limit         int
}

// UpdateStatusRequest updates the lead status.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=new contacted qualified converted lost"`
}

// UpdateDetailsRequest mutates the fixed attributes only. The extension map
// is not editable through this path.
type UpdateDetailsRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	Message   *string `json:"message"`
}

// LeadView is a lead plus its computed flat form data.
type LeadView struct {
	Lead
	AllFormData map[string]interface{} `json:"allFormData"`
}

func NewLeadView(l Lead) LeadView {
	return LeadView{Lead: l, AllFormData: l.AllFormData()}
}

// DayCount is one bucket of the trailing by-day histogram.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatsOverview aggregates counts per status, a 30-day histogram and the
// most recent leads, scoped like List.
type StatsOverview struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
	ByDay    []DayCount     `json:"byDay"`
	Recent   []LeadView     `json:"recent"`
}

// Export is the unpaginated, display-friendly flat projection for CSV and
// sheet generation. Headers carry the column order; row values are keyed
// by header.
type Export struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}
