package week

import (
	"testing"
	"time"
)

func TestStart(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	tests := []struct {
		name       string
		now        time.Time
		convention Convention
		want       time.Time
	}{
		{
			name:       "wednesday monday start",
			now:        time.Date(2024, 1, 10, 12, 0, 0, 0, loc),
			convention: MondayStart,
			want:       time.Date(2024, 1, 8, 0, 0, 0, 0, loc),
		},
		{
			name:       "wednesday sunday start",
			now:        time.Date(2024, 1, 10, 12, 0, 0, 0, loc),
			convention: SundayStart,
			want:       time.Date(2024, 1, 7, 0, 0, 0, 0, loc),
		},
		{
			name:       "sunday goes back six days under monday start",
			now:        time.Date(2024, 1, 14, 23, 59, 59, 0, loc),
			convention: MondayStart,
			want:       time.Date(2024, 1, 8, 0, 0, 0, 0, loc),
		},
		{
			name:       "sunday is its own boundary under sunday start",
			now:        time.Date(2024, 1, 14, 23, 59, 59, 0, loc),
			convention: SundayStart,
			want:       time.Date(2024, 1, 14, 0, 0, 0, 0, loc),
		},
		{
			name:       "monday midnight is its own boundary",
			now:        time.Date(2024, 1, 8, 0, 0, 0, 0, loc),
			convention: MondayStart,
			want:       time.Date(2024, 1, 8, 0, 0, 0, 0, loc),
		},
		{
			name:       "boundary crosses month start",
			now:        time.Date(2024, 3, 2, 8, 30, 0, 0, loc),
			convention: MondayStart,
			want:       time.Date(2024, 2, 26, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Start(tt.now, tt.convention)
			if !got.Equal(tt.want) {
				t.Errorf("Start() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartReturnsCorrectWeekday(t *testing.T) {
	loc := time.UTC

	// Walk a full fortnight so every weekday is covered
	for d := 0; d < 14; d++ {
		now := time.Date(2024, 5, 1, 15, 4, 5, 0, loc).AddDate(0, 0, d)

		monday := Start(now, MondayStart)
		if monday.Weekday() != time.Monday {
			t.Errorf("Start(%v, MondayStart).Weekday() = %v, want Monday", now, monday.Weekday())
		}

		sunday := Start(now, SundayStart)
		if sunday.Weekday() != time.Sunday {
			t.Errorf("Start(%v, SundayStart).Weekday() = %v, want Sunday", now, sunday.Weekday())
		}
	}
}

func TestStartIsIdempotent(t *testing.T) {
	loc := time.UTC
	for d := 0; d < 7; d++ {
		now := time.Date(2024, 6, 3, 9, 45, 0, 0, loc).AddDate(0, 0, d)
		for _, c := range []Convention{MondayStart, SundayStart} {
			once := Start(now, c)
			twice := Start(once, c)
			if !once.Equal(twice) {
				t.Errorf("Start(Start(%v)) = %v, want %v", now, twice, once)
			}
		}
	}
}

func TestStartNormalizesToMidnight(t *testing.T) {
	now := time.Date(2024, 1, 10, 23, 59, 59, 999000000, time.UTC)
	got := Start(now, MondayStart)
	h, m, s := got.Clock()
	if h != 0 || m != 0 || s != 0 || got.Nanosecond() != 0 {
		t.Errorf("Start() = %v, want time normalized to 00:00:00.000", got)
	}
}

func TestParseConvention(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Convention
		wantErr bool
	}{
		{name: "monday", input: "monday", want: MondayStart},
		{name: "sunday", input: "sunday", want: SundayStart},
		{name: "mixed case", input: " Monday ", want: MondayStart},
		{name: "empty defaults to monday", input: "", want: MondayStart},
		{name: "unknown", input: "saturday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConvention(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConvention(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseConvention(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
