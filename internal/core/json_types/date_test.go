package json_types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		parsed, err := ParseDate("2025-03-03", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-03", parsed.String())
		assert.Equal(t, time.Monday, parsed.Weekday())
	})

	t.Run("date with time without timezone", func(t *testing.T) {
		parsed, err := ParseDate("2025-03-03T15:30:00", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-03", parsed.String())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDate("not-a-date", time.UTC)
		assert.Error(t, err)
	})
}

func TestDateAfter(t *testing.T) {
	earlier, err := ParseDate("2025-03-03", time.UTC)
	require.NoError(t, err)
	later, err := ParseDate("2025-03-04", time.UTC)
	require.NoError(t, err)

	assert.True(t, later.After(earlier))
	assert.False(t, earlier.After(later))
	assert.False(t, earlier.After(earlier))
}

func TestDateAfterAcrossTimezones(t *testing.T) {
	buenosAires, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	utcDate, err := ParseDate("2025-03-04", time.UTC)
	require.NoError(t, err)
	localDate, err := ParseDate("2025-03-04", buenosAires)
	require.NoError(t, err)

	// Одинаковые календарные даты из разных таймзон равны
	assert.True(t, utcDate.Equal(localDate))
	assert.False(t, utcDate.After(localDate))
	assert.False(t, localDate.After(utcDate))
}

func TestDateJSON(t *testing.T) {
	date := NewDate(time.Date(2025, 3, 3, 18, 45, 0, 0, time.UTC))

	data, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-03"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(date))
}
