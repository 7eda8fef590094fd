package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func window(t *testing.T, start, end string) TimeWindow {
	t.Helper()
	return TimeWindow{Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestTimeWindow_Overlaps(t *testing.T) {
	base := window(t, "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z")

	tests := []struct {
		name  string
		other TimeWindow
		want  bool
	}{
		{
			name:  "пересечение по середине",
			other: window(t, "2026-09-01T10:30:00Z", "2026-09-01T11:30:00Z"),
			want:  true,
		},
		{
			name:  "полное вложение",
			other: window(t, "2026-09-01T10:15:00Z", "2026-09-01T10:45:00Z"),
			want:  true,
		},
		{
			name:  "встык не пересекаются",
			other: window(t, "2026-09-01T11:00:00Z", "2026-09-01T12:00:00Z"),
			want:  false,
		},
		{
			name:  "не пересекаются",
			other: window(t, "2026-09-01T12:00:00Z", "2026-09-01T13:00:00Z"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeWindow_Clip(t *testing.T) {
	bounds := window(t, "2026-09-01T09:00:00Z", "2026-09-01T18:00:00Z")

	t.Run("окно внутри границ не меняется", func(t *testing.T) {
		w := window(t, "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z")
		clipped, ok := w.Clip(bounds)
		assert.True(t, ok)
		assert.Equal(t, w, clipped)
	})

	t.Run("выступающее окно обрезается", func(t *testing.T) {
		w := window(t, "2026-09-01T08:00:00Z", "2026-09-01T10:00:00Z")
		clipped, ok := w.Clip(bounds)
		assert.True(t, ok)
		assert.Equal(t, bounds.Start, clipped.Start)
		assert.Equal(t, mustTime(t, "2026-09-01T10:00:00Z"), clipped.End)
	})

	t.Run("окно вне границ исчезает", func(t *testing.T) {
		w := window(t, "2026-09-01T19:00:00Z", "2026-09-01T20:00:00Z")
		_, ok := w.Clip(bounds)
		assert.False(t, ok)
	})
}

func TestTimeWindow_Duration(t *testing.T) {
	w := window(t, "2026-09-01T10:00:00Z", "2026-09-01T10:30:00Z")
	assert.Equal(t, 30*time.Minute, w.Duration())
}
