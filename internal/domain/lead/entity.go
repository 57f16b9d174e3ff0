package lead

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Status represents lead status. Transitions are free-form among the five
// values; no ordering is enforced.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusLost      Status = "lost"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

// JSONMap is the schema-less extension map, stored as a JSON column.
// Values are trimmed strings, or []string for multi-select fields. The
// field set varies per landing page and may change over the lead's
// lifetime without migrating historical leads.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(b, m)
}

// Lead is one captured visitor submission tied to a landing page.
type Lead struct {
	ID            int64     `gorm:"column:id;primaryKey" json:"id"`
	LandingPageID int64     `gorm:"column:landing_page_id;index" json:"landingPageId"`
	FirstName     string    `gorm:"column:first_name" json:"firstName,omitempty"`
	LastName      string    `gorm:"column:last_name" json:"lastName,omitempty"`
	Email         string    `gorm:"column:email" json:"email,omitempty"`
	Phone         string    `gorm:"column:phone" json:"phone,omitempty"`
	Company       string    `gorm:"column:company" json:"company,omitempty"`
	Message       string    `gorm:"column:message" json:"message,omitempty"`
	DynamicFields JSONMap   `gorm:"column:dynamic_fields;type:jsonb" json:"dynamicFields"`
	Status        Status    `gorm:"column:status" json:"status"`
	Source        string    `gorm:"column:source" json:"source"`
	IPAddress     string    `gorm:"column:ip_address" json:"ipAddress,omitempty"`
	UserAgent     string    `gorm:"column:user_agent" json:"userAgent,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Lead) TableName() string { return "leads" }

// AllFormData merges fixed fields and the extension map into one flat
// object for display. Computed, never stored; standard fields take
// precedence on key collisions.
func (l *Lead) AllFormData() map[string]interface{} {
	merged := make(map[string]interface{}, len(l.DynamicFields)+6)
	for k, v := range l.DynamicFields {
		merged[k] = v
	}
	for k, v := range map[string]string{
		"firstName": l.FirstName,
		"lastName":  l.LastName,
		"email":     l.Email,
		"phone":     l.Phone,
		"company":   l.Company,
		"message":   l.Message,
	} {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
