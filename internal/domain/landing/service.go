package landing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Service contains landing page business logic.
type Service struct {
	pages PageRepository
	leads LeadCounter
}

func NewService(pages PageRepository, leads LeadCounter) *Service {
	return &Service{pages: pages, leads: leads}
}

func (s *Service) Create(ctx context.Context, createdBy int64, req CreatePageRequest) (*LandingPage, error) {
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)

	if taken, err := s.pages.NameExists(ctx, name, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrNameTaken
	}
	if taken, err := s.pages.URLExists(ctx, url, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrURLTaken
	}

	fields := req.FormFields
	if errs := ValidateFormFields(fields); errs != nil {
		return nil, &FieldSchemaError{Errors: errs}
	}
	assignOrder(fields)

	toggles := req.IncludeDefaultFields
	if toggles == nil {
		toggles = DefaultFieldSet{"firstName": true, "lastName": true, "email": true}
	}

	page := &LandingPage{
		Name:                 name,
		URL:                  url,
		Description:          strings.TrimSpace(req.Description),
		Status:               StatusActive,
		FormFields:           fields,
		IncludeDefaultFields: toggles,
		CreatedBy:            createdBy,
	}
	if page.FormFields == nil {
		page.FormFields = FormFields{}
	}

	if err := s.pages.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*LandingPage, error) {
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

func (s *Service) List(ctx context.Context, status *Status, page, limit int) ([]LandingPage, int, error) {
	return s.pages.List(ctx, status, page, limit)
}

// Update applies partial changes. Name/url uniqueness is re-checked
// excluding the page itself; a replaced form schema is validated whole.
func (s *Service) Update(ctx context.Context, id int64, req UpdatePageRequest) (*LandingPage, error) {
	page, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		name := strings.TrimSpace(*req.Name)
		if taken, err := s.pages.NameExists(ctx, name, id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrNameTaken
		}
		page.Name = name
	}
	if req.URL != nil && strings.TrimSpace(*req.URL) != "" {
		url := strings.TrimSpace(*req.URL)
		if taken, err := s.pages.URLExists(ctx, url, id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrURLTaken
		}
		page.URL = url
	}
	if req.Description != nil {
		page.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if *req.Status != StatusActive && *req.Status != StatusInactive {
			return nil, ErrInvalidStatus
		}
		page.Status = *req.Status
	}
	if req.FormFields != nil {
		fields := *req.FormFields
		if errs := ValidateFormFields(fields); errs != nil {
			return nil, &FieldSchemaError{Errors: errs}
		}
		assignOrder(fields)
		page.FormFields = fields
	}
	if req.IncludeDefaultFields != nil {
		page.IncludeDefaultFields = *req.IncludeDefaultFields
	}

	if err := s.pages.Update(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// UpdateFormFields replaces the form schema, optionally with new toggles.
func (s *Service) UpdateFormFields(ctx context.Context, id int64, req UpdateFormFieldsRequest) (*LandingPage, error) {
	return s.Update(ctx, id, UpdatePageRequest{
		FormFields:           &req.FormFields,
		IncludeDefaultFields: req.IncludeDefaultFields,
	})
}

// Delete is blocked while any lead references the page; the count is
// reported in the error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.leads.CountByLandingPage(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d leads reference this page", ErrHasLeads, count)
	}

	return s.pages.Delete(ctx, id)
}

// GetFormConfig is the read-only projection for a public form renderer.
func (s *Service) GetFormConfig(ctx context.Context, id int64) (*FormConfig, error) {
	page, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FormConfig{
		Name:                 page.Name,
		FormFields:           page.FormFields,
		IncludeDefaultFields: page.IncludeDefaultFields,
	}, nil
}

// TestForm dry-runs the ingestion validation without persisting anything.
func (s *Service) TestForm(ctx context.Context, id int64, payload map[string]interface{}) (*TestFormResult, error) {
	page, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, errs := page.ParseSubmission(payload); errs != nil {
		return &TestFormResult{Valid: false, Errors: errs}, nil
	}
	return &TestFormResult{Valid: true}, nil
}

// FieldSchemaError reports an invalid form schema, one message per problem,
// each identifying the offending index.
type FieldSchemaError struct {
	Errors []string
}

func (e *FieldSchemaError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// ValidateFormFields checks that every entry carries name, label and type
// and that names are unique within the page.
func ValidateFormFields(fields FormFields) []string {
	var errs []string
	seen := map[string]bool{}
	for i, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, fmt.Sprintf("Form field at index %d is missing a name", i))
		}
		if strings.TrimSpace(f.Label) == "" {
			errs = append(errs, fmt.Sprintf("Form field at index %d is missing a label", i))
		}
		if strings.TrimSpace(string(f.Type)) == "" {
			errs = append(errs, fmt.Sprintf("Form field at index %d is missing a type", i))
		}
		if f.Name != "" && seen[f.Name] {
			errs = append(errs, fmt.Sprintf("Form field at index %d duplicates name %q", i, f.Name))
		}
		seen[f.Name] = true
	}
	return errs
}

// assignOrder fills a missing display order with the array index. Order is
// a plain int, so an explicit zero is indistinguishable from an absent one
// and is likewise replaced with the field's index.
func assignOrder(fields FormFields) {
	for i := range fields {
		if fields[i].Order == 0 {
			fields[i].Order = i
		}
	}
}
