package log

import (
	"time"
)

// Log is one persisted HTTP request/response record written by the async logger.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	RequestBody     string    `gorm:"type:text" json:"request_body,omitempty"`
	ResponseBody    string    `gorm:"type:text" json:"response_body,omitempty"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers,omitempty"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers,omitempty"`
	StatusCode      int       `gorm:"not null" json:"status_code"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Log model
func (Log) TableName() string {
	return "logs"
}
