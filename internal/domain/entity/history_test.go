package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

func TestHistoryEntry_RecordVisitNewerWins(t *testing.T) {
	e := entity.NewHistoryEntry("https://a.com", "Old")
	e.LastVisited = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	newer := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	e.RecordVisit("New", "https://a.com/icon.png", newer)

	assert.Equal(t, int64(2), e.VisitCount)
	assert.Equal(t, "New", e.Title)
	assert.Equal(t, newer, e.LastVisited)
}

func TestHistoryEntry_RecordVisitOlderOnlyCounts(t *testing.T) {
	e := entity.NewHistoryEntry("https://a.com", "Current")
	e.LastVisited = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	e.RecordVisit("Stale", "", time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, int64(2), e.VisitCount)
	assert.Equal(t, "Current", e.Title)
}

func TestIsRecordableURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com", true},
		{"about:blank", false},
		{"veil://settings", false},
		{"chrome://flags", false},
		{"file:///tmp/x", false},
		{"data:text/html,hi", false},
		{"javascript:void(0)", false},
		{"blob:https://a.com/x", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.IsRecordableURL(tt.url))
		})
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2026, 8, 25, 15, 0, 0, 0, time.UTC) // a Tuesday

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"this morning", time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC), "Today"},
		{"yesterday evening", time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC), "Yesterday"},
		{"last friday", time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC), "Friday"},
		{"six days ago", time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC), "Wednesday"},
		{"older", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), "August 1, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.DayLabel(tt.ts, now))
		})
	}
}
