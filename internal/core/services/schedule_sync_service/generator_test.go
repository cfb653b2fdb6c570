package schedule_sync_service

import (
	"testing"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/json_types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeOfDay(t *testing.T, str string) json_types.TimeOfDay {
	t.Helper()
	parsed, err := json_types.ParseTimeOfDay(str)
	require.NoError(t, err)
	return parsed
}

func TestGenerateDaySlots(t *testing.T) {
	t.Run("window is an exact multiple of duration", func(t *testing.T) {
		windows := GenerateDaySlots(timeOfDay(t, "08:00"), timeOfDay(t, "10:00"), 60)

		require.Len(t, windows, 2)
		assert.Equal(t, "08:00", windows[0].Start.String())
		assert.Equal(t, "09:00", windows[0].End.String())
		assert.Equal(t, "09:00", windows[1].Start.String())
		assert.Equal(t, "10:00", windows[1].End.String())
	})

	t.Run("slots are contiguous and non overlapping", func(t *testing.T) {
		windows := GenerateDaySlots(timeOfDay(t, "09:00"), timeOfDay(t, "21:00"), 90)

		require.Len(t, windows, 8)
		assert.Equal(t, "09:00", windows[0].Start.String())
		assert.Equal(t, "21:00", windows[len(windows)-1].End.String())
		for i := 1; i < len(windows); i++ {
			assert.Equal(t, windows[i-1].End, windows[i].Start)
		}
	})

	t.Run("partial trailing slot is dropped", func(t *testing.T) {
		windows := GenerateDaySlots(timeOfDay(t, "08:00"), timeOfDay(t, "09:10"), 30)

		require.Len(t, windows, 2)
		assert.Equal(t, "08:30", windows[1].Start.String())
		assert.Equal(t, "09:00", windows[1].End.String())
	})

	t.Run("window shorter than duration", func(t *testing.T) {
		windows := GenerateDaySlots(timeOfDay(t, "08:00"), timeOfDay(t, "08:45"), 60)
		assert.Empty(t, windows)
	})

	t.Run("crosses the hour boundary correctly", func(t *testing.T) {
		windows := GenerateDaySlots(timeOfDay(t, "23:00"), timeOfDay(t, "23:59"), 30)

		require.Len(t, windows, 1)
		assert.Equal(t, "23:00", windows[0].Start.String())
		assert.Equal(t, "23:30", windows[0].End.String())
	})

	t.Run("invalid input yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateDaySlots(timeOfDay(t, "10:00"), timeOfDay(t, "08:00"), 60))
		assert.Empty(t, GenerateDaySlots(timeOfDay(t, "08:00"), timeOfDay(t, "10:00"), 0))
		assert.Empty(t, GenerateDaySlots(timeOfDay(t, "08:00"), timeOfDay(t, "10:00"), -30))
	})
}
