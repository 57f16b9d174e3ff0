package landing

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repository handles landing page data access.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *gorm.DB { return r.db }

func (r *Repository) Create(ctx context.Context, p *LandingPage) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*LandingPage, error) {
	var p LandingPage
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(ctx context.Context, p *LandingPage) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&LandingPage{}, id).Error
}

// List returns pages newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status *Status, page, limit int) ([]LandingPage, int, error) {
	q := r.db.WithContext(ctx).Model(&LandingPage{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pages []LandingPage
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&pages).Error; err != nil {
		return nil, 0, err
	}

	return pages, int(total), nil
}

// NameExists checks name uniqueness, optionally excluding one page.
func (r *Repository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&LandingPage{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// URLExists checks url uniqueness, optionally excluding one page.
func (r *Repository) URLExists(ctx context.Context, url string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&LandingPage{}).
		Where("LOWER(url) = ?", strings.ToLower(strings.TrimSpace(url)))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LandingPage{}).Count(&count).Error
	return int(count), err
}
