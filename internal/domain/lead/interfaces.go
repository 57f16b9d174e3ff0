package lead

import (
	"context"
	"time"

	"leadcapture/internal/domain/landing"
)

// LeadRepository is the data access needed by the lead service.
type LeadRepository interface {
	Create(ctx context.Context, l *Lead) error
	GetByID(ctx context.Context, id int64) (*Lead, error)
	Update(ctx context.Context, l *Lead) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q ListQuery, scopeIDs []int64) ([]Lead, int, error)
	ListAll(ctx context.Context, q ListQuery, scopeIDs []int64) ([]Lead, error)
	CountsByStatus(ctx context.Context, q ListQuery, scopeIDs []int64) (map[Status]int, error)
	CountsByDay(ctx context.Context, q ListQuery, scopeIDs []int64, since time.Time) ([]DayCount, error)
	Recent(ctx context.Context, scopeIDs []int64, limit int) ([]Lead, error)
}

// PageReader loads the form contract that directs ingestion validation.
type PageReader interface {
	GetByID(ctx context.Context, id int64) (*landing.LandingPage, error)
}

// AccessReader resolves a sub-admin's visible landing pages.
type AccessReader interface {
	ActivePageIDs(ctx context.Context, subAdminID int64) ([]int64, error)
}

// Publisher pushes created leads to live feed subscribers. Best-effort;
// ingestion never fails on publish.
type Publisher interface {
	PublishLead(l *Lead)
}
