package tenant

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Weekday keys used in BusinessHours, lowercase English names.
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// DayHours is the opening window for a single weekday. A nil entry in
// BusinessHours means the business is closed that day. Open and Close are
// local wall-clock times in "15:04" format.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Settings holds per-tenant configuration with explicitly enumerated fields.
// Stored as a single jsonb column.
type Settings struct {
	WhatsappEnabled bool   `json:"whatsapp_enabled"`
	PaymentEnabled  bool   `json:"payment_enabled"`
	BrandColor      string `json:"brand_color,omitempty"`
	LogoURL         string `json:"logo_url,omitempty"`

	BusinessHours map[string]*DayHours `json:"business_hours,omitempty"`
}

// HoursFor returns the opening window for the given weekday key, or nil when
// the business is closed that day or no hours are configured.
func (s Settings) HoursFor(weekday string) *DayHours {
	if s.BusinessHours == nil {
		return nil
	}
	return s.BusinessHours[weekday]
}

// Scan implements the Scanner interface for database deserialization
func (s *Settings) Scan(value interface{}) error {
	if value == nil {
		*s = Settings{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver Valuer interface for database serialization
func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}
