package landing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldURL      FieldType = "url"
)

// DefaultFieldNames are the fixed lead attributes a page can toggle on.
var DefaultFieldNames = []string{"firstName", "lastName", "email", "phone", "company", "message"}

type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FieldValidation struct {
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// FormField declares one dynamic form field. Name doubles as the storage key
// for submitted values in the lead's extension map.
type FormField struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Type        FieldType        `json:"type"`
	Required    bool             `json:"required"`
	Placeholder string           `json:"placeholder,omitempty"`
	Options     []FieldOption    `json:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"`
	Order       int              `json:"order"`
}

// FormFields is stored as a JSON column.
type FormFields []FormField

func (f FormFields) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	return string(b), err
}

func (f *FormFields) Scan(value interface{}) error {
	if value == nil {
		*f = FormFields{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for FormFields")
	}
	return json.Unmarshal(b, f)
}

// ByName returns the declared field with the given name, or nil.
func (f FormFields) ByName(name string) *FormField {
	for i := range f {
		if f[i].Name == name {
			return &f[i]
		}
	}
	return nil
}

// DefaultFieldSet is the includeDefaultFields toggle map, stored as a JSON
// column keyed by the fixed default field names.
type DefaultFieldSet map[string]bool

func (d DefaultFieldSet) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	return string(b), err
}

func (d *DefaultFieldSet) Scan(value interface{}) error {
	if value == nil {
		*d = DefaultFieldSet{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for DefaultFieldSet")
	}
	return json.Unmarshal(b, d)
}

// LandingPage is a submission target with a dynamic form contract.
// Name and URL are unique across all pages.
type LandingPage struct {
	ID                   int64           `gorm:"column:id;primaryKey" json:"id"`
	Name                 string          `gorm:"column:name;uniqueIndex" json:"name"`
	URL                  string          `gorm:"column:url;uniqueIndex" json:"url"`
	Description          string          `gorm:"column:description" json:"description,omitempty"`
	Status               Status          `gorm:"column:status" json:"status"`
	FormFields           FormFields      `gorm:"column:form_fields;type:jsonb" json:"formFields"`
	IncludeDefaultFields DefaultFieldSet `gorm:"column:include_default_fields;type:jsonb" json:"includeDefaultFields"`
	CreatedBy            int64           `gorm:"column:created_by" json:"createdBy"`
	CreatedAt            time.Time       `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt            time.Time       `gorm:"column:updated_at" json:"updatedAt"`
}

func (LandingPage) TableName() string { return "landing_pages" }

func (p *LandingPage) IsActive() bool { return p.Status == StatusActive }
