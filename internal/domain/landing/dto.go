package landing

// CreatePageRequest creates a landing page. Form fields and default field
// toggles may be supplied at creation or replaced later.
type CreatePageRequest struct {
	Name                 string          `json:"name" validate:"required,min=2"`
	URL                  string          `json:"url" validate:"required,url"`
	Description          string          `json:"description"`
	FormFields           FormFields      `json:"formFields"`
	IncludeDefaultFields DefaultFieldSet `json:"includeDefaultFields"`
}

// UpdatePageRequest carries partial updates; nil fields are left unchanged.
type UpdatePageRequest struct {
	Name                 *string          `json:"name"`
	URL                  *string          `json:"url"`
	Description          *string          `json:"description"`
	Status               *Status          `json:"status"`
	FormFields           *FormFields      `json:"formFields"`
	IncludeDefaultFields *DefaultFieldSet `json:"includeDefaultFields"`
}

// UpdateFormFieldsRequest replaces the whole form schema.
type UpdateFormFieldsRequest struct {
	FormFields           FormFields       `json:"formFields"`
	IncludeDefaultFields *DefaultFieldSet `json:"includeDefaultFields"`
}

// FormConfig is the public projection for a form renderer.
type FormConfig struct {
	Name                 string          `json:"name"`
	FormFields           FormFields      `json:"formFields"`
	IncludeDefaultFields DefaultFieldSet `json:"includeDefaultFields"`
}

// TestFormResult is the dry-run validation outcome.
type TestFormResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
