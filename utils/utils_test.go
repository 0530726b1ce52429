package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"salon-booking/types"
)

func TestValidateSlug(t *testing.T) {
	assert.True(t, ValidateSlug("joes-barbershop"))
	assert.True(t, ValidateSlug("salon123"))
	assert.False(t, ValidateSlug("a"))
	assert.False(t, ValidateSlug("-leading"))
	assert.False(t, ValidateSlug("trailing-"))
	assert.False(t, ValidateSlug("UPPER"))
	assert.False(t, ValidateSlug("has space"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "joe-s-barbershop", Slugify("Joe's Barbershop"))
	assert.Equal(t, "salao-123", Slugify("  salao 123 "))
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("+5511999998888"))
	assert.True(t, ValidatePhoneNumber("11999998888"))
	assert.False(t, ValidatePhoneNumber("123"))
	assert.False(t, ValidatePhoneNumber("not-a-phone"))
}

func TestMonthWindow(t *testing.T) {
	ts := time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)
	start, end := MonthWindow(ts)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 28, end.Day())
	assert.True(t, end.After(ts))
}

func TestCombineDateAndClock(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := CombineDateAndClock(date, "09:30", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), got)

	_, err = CombineDateAndClock(date, "25:99", time.UTC)
	assert.Error(t, err)
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "monday", WeekdayKey(time.Monday))
	assert.Equal(t, "sunday", WeekdayKey(time.Sunday))
}

func TestCreateSanitizedLogEntryRedactsPasswords(t *testing.T) {
	app := fiber.New()

	var entry types.LogEntry
	app.Post("/api/login", func(c *fiber.Ctx) error {
		result := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Login successful",
		})
		entry = CreateSanitizedLogEntry(c)
		return result
	})

	body := `{"email":"owner@demo-barbershop.test","password":"super-secret"}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/api/login", entry.URL)
	assert.Equal(t, fiber.StatusOK, entry.StatusCode)
	assert.Contains(t, entry.ResponseBody, "Login successful")
	assert.False(t, entry.CreatedAt.IsZero())

	assert.NotContains(t, entry.RequestBody, "super-secret")
	assert.Contains(t, entry.RequestBody, "[REDACTED]")
	assert.Contains(t, entry.RequestBody, "owner@demo-barbershop.test")
}

func TestCreateSanitizedLogEntryKeepsNonCredentialBodies(t *testing.T) {
	app := fiber.New()

	var entry types.LogEntry
	app.Post("/api/public/demo/bookings", func(c *fiber.Ctx) error {
		result := c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
			Status:  fiber.StatusCreated,
			Message: "Booking created successfully",
		})
		entry = CreateSanitizedLogEntry(c)
		return result
	})

	body := `{"customer_name":"Ana","customer_phone":"+5511999998888"}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/public/demo/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	_, err := app.Test(req)
	assert.NoError(t, err)

	assert.Equal(t, body, entry.RequestBody)
	assert.Equal(t, fiber.StatusCreated, entry.StatusCode)
}
