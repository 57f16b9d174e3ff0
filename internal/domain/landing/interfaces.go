package landing

import "context"

// PageRepository is the data access needed by the landing page service.
type PageRepository interface {
	Create(ctx context.Context, p *LandingPage) error
	GetByID(ctx context.Context, id int64) (*LandingPage, error)
	Update(ctx context.Context, p *LandingPage) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status *Status, page, limit int) ([]LandingPage, int, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	URLExists(ctx context.Context, url string, excludeID int64) (bool, error)
}

// LeadCounter reports how many leads reference a page. Implemented by the
// lead repository; deletion is blocked while the count is non-zero.
type LeadCounter interface {
	CountByLandingPage(ctx context.Context, landingPageID int64) (int, error)
}
