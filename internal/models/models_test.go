package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				UserID:    1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := session.IsExpired()
			if result != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestMomentHasValidTrim(t *testing.T) {
	start := 1.5
	end := 4.0
	bad := 0.5

	tests := []struct {
		name   string
		moment Moment
		want   bool
	}{
		{
			name:   "both offsets present and ordered",
			moment: Moment{TrimStart: &start, TrimEnd: &end},
			want:   true,
		},
		{
			name:   "no offsets",
			moment: Moment{},
			want:   false,
		},
		{
			name:   "only start",
			moment: Moment{TrimStart: &start},
			want:   false,
		},
		{
			name:   "end before start",
			moment: Moment{TrimStart: &start, TrimEnd: &bad},
			want:   false,
		},
		{
			name:   "end equals start",
			moment: Moment{TrimStart: &start, TrimEnd: &start},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.moment.HasValidTrim()
			if result != tt.want {
				t.Errorf("Moment.HasValidTrim() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestStatsSnapshotIsZero(t *testing.T) {
	tests := []struct {
		name     string
		snapshot StatsSnapshot
		want     bool
	}{
		{
			name:     "empty snapshot",
			snapshot: StatsSnapshot{},
			want:     true,
		},
		{
			name:     "total words set",
			snapshot: StatsSnapshot{TotalWords: 3},
			want:     false,
		},
		{
			name:     "only weekly moments set",
			snapshot: StatsSnapshot{MomentsThisWeek: 1},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.snapshot.IsZero()
			if result != tt.want {
				t.Errorf("StatsSnapshot.IsZero() = %v, want %v", result, tt.want)
			}
		})
	}
}
