package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("abc"))
	assert.False(t, IsEmpty(" abc "))
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{"owner@lumiere.salon", "user.name+1@domain.co", "a@b.cd"} {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""} {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-01")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	for _, s := range []string{"2025-13-01", "2025-02-30", "2025/03/01", "01-03-2025", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidClock(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "23:59"} {
		assert.True(t, IsValidClock(s), s)
	}
	for _, s := range []string{"24:00", "9:05", "09:60", "09:05:00", ""} {
		assert.False(t, IsValidClock(s), s)
	}
}

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod(1, 2025))
	assert.False(t, IsValidPeriod(13, 2025))
	assert.False(t, IsValidPeriod(0, 2025))
	assert.False(t, IsValidPeriod(6, 1999))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("name", "is required")
	errs.Add("work_days", "must be non-negative")
	errs.Add("name", "must not exceed 100 characters")

	err := errs.Err()
	assert.Error(t, err)
	assert.Equal(t, map[string]string{
		"name":      "is required",
		"work_days": "must be non-negative",
	}, errs.ToMap())
	assert.Equal(t, "name: is required; work_days: must be non-negative; name: must not exceed 100 characters", err.Error())
}
