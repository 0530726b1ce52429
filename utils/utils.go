package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"salon-booking/types"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks the public booking page key: lowercase alphanumerics
// and single hyphens, no leading/trailing hyphen.
func ValidateSlug(slug string) bool {
	if len(slug) < 2 || len(slug) > 100 {
		return false
	}
	return slugPattern.MatchString(slug)
}

// Slugify derives a usable slug from a business name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidatePhoneNumber accepts E.164-ish numbers: optional +, 8 to 15 digits.
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)
	pattern := `^\+?[0-9]{8,15}$`
	re := regexp.MustCompile(pattern)
	return re.MatchString(phone)
}

// MonthWindow returns the [first instant, last instant] of the month
// containing t. Used to count bookings against the monthly quota.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	n := now.With(t)
	return n.BeginningOfMonth(), n.EndOfMonth()
}

// CombineDateAndClock resolves a "15:04" wall-clock string on the given date
// in the given location.
func CombineDateAndClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation("15:04", clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// WeekdayKey maps a time.Weekday to the lowercase key used in tenant
// business-hours settings.
func WeekdayKey(w time.Weekday) string {
	return strings.ToLower(w.String())
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
// API requests and responses. Must be called after the response has been written.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

// sanitizeRequestBody returns the request body with credential fields redacted
// so password values never reach the logs table.
func sanitizeRequestBody(c *fiber.Ctx) string {
	body := string(append([]byte(nil), c.Body()...))

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return body
	}

	redacted := false
	for key := range parsed {
		if strings.Contains(strings.ToLower(key), "password") {
			parsed[key] = "[REDACTED]"
			redacted = true
		}
	}
	if !redacted {
		return body
	}

	if jsonBytes, err := json.Marshal(parsed); err == nil {
		return string(jsonBytes)
	}
	return "[REQUEST_BODY_REDACTED]"
}
