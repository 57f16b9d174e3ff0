package lead

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository handles lead data access.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *gorm.DB { return r.db }

func (r *Repository) Create(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Update(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Lead{}, id).Error
}

// CountByLandingPage backs the landing page deletion guard.
func (r *Repository) CountByLandingPage(ctx context.Context, landingPageID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Lead{}).
		Where("landing_page_id = ?", landingPageID).
		Count(&count).Error
	return int(count), err
}

// CountByLandingPages backs the sub-admin deletion guard.
func (r *Repository) CountByLandingPages(ctx context.Context, landingPageIDs []int64) (int, error) {
	if len(landingPageIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&Lead{}).
		Where("landing_page_id IN ?", landingPageIDs).
		Count(&count).Error
	return int(count), err
}

// applyFilter builds the shared WHERE clause. scopeIDs non-nil restricts to
// that page set (the sub-admin scope).
func (r *Repository) applyFilter(ctx context.Context, q ListQuery, scopeIDs []int64) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&Lead{})

	if scopeIDs != nil {
		db = db.Where("landing_page_id IN ?", scopeIDs)
	}
	if q.LandingPageID != nil {
		db = db.Where("landing_page_id = ?", *q.LandingPageID)
	}
	if q.Status != nil {
		db = db.Where("status = ?", *q.Status)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		db = db.Where(
			"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if q.StartDate != nil {
		db = db.Where("created_at >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("created_at <= ?", *q.EndDate)
	}

	return db
}

// List returns matching leads newest first with the total match count.
func (r *Repository) List(ctx context.Context, q ListQuery, scopeIDs []int64) ([]Lead, int, error) {
	db := r.applyFilter(ctx, q, scopeIDs)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []Lead
	if err := db.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, int(total), nil
}

// ListAll returns every matching lead, newest first, for export.
func (r *Repository) ListAll(ctx context.Context, q ListQuery, scopeIDs []int64) ([]Lead, error) {
	var leads []Lead
	err := r.applyFilter(ctx, q, scopeIDs).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

// CountsByStatus returns per-status counts within the filter.
func (r *Repository) CountsByStatus(ctx context.Context, q ListQuery, scopeIDs []int64) (map[Status]int, error) {
	rows, err := r.applyFilter(ctx, q, scopeIDs).
		Select("status, COUNT(*) AS count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountsByDay buckets creations per calendar day since the given time.
func (r *Repository) CountsByDay(ctx context.Context, q ListQuery, scopeIDs []int64, since time.Time) ([]DayCount, error) {
	rows, err := r.applyFilter(ctx, q, scopeIDs).
		Where("created_at >= ?", since).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []DayCount
	for rows.Next() {
		var b DayCount
		if err := rows.Scan(&b.Date, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// Recent returns the most recent leads within the scope.
func (r *Repository) Recent(ctx context.Context, scopeIDs []int64, limit int) ([]Lead, error) {
	db := r.db.WithContext(ctx).Model(&Lead{})
	if scopeIDs != nil {
		db = db.Where("landing_page_id IN ?", scopeIDs)
	}

	var leads []Lead
	err := db.Order("created_at DESC").Limit(limit).Find(&leads).Error
	return leads, err
}
