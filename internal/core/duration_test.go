package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"0", 0},
		{"0s", 0},
		{"10s", 10 * time.Second},
		{"3m", 3 * time.Minute},
		{"3h", 3 * time.Hour},
		{"2m 10s", 2*time.Minute + 10*time.Second},
		{"2m10s", 2*time.Minute + 10*time.Second},
		{"1 d", 24 * time.Hour},
		{"1d12h", 36 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"-5s", -5 * time.Second},
		{" -1h 30m ", -(time.Hour + 30*time.Minute)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDuration_Errors(t *testing.T) {
	tests := []struct {
		in      string
		message string
	}{
		{"", "invalid duration: ''"},
		{"soon", "invalid duration: 'soon'"},
		{"12", "invalid duration units: ''"},
		{"1q", "invalid duration units: 'q'"},
		{"3h 2y", "invalid duration units: 'y'"},
		{"99999999999999999999s", "duration out of range: '99999999999999999999s'"},
		{"20000000w", "duration out of range: '20000000w'"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDuration(tt.in)
			var de *DurationError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DurationError, got %v", err)
			}
			if de.Error() != tt.message {
				t.Fatalf("message = %q, want %q", de.Error(), tt.message)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{500 * time.Millisecond, "0s"},
		{90 * time.Second, "1m 30s"},
		{26*time.Hour + 5*time.Minute, "1d 2h 5m"},
		{-2 * time.Hour, "-2h"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNextWake(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	got, err := NextWake("0 9 * * *", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Fatalf("NextWake = %v, want %v", got, want)
	}

	got, err = NextWake("@hourly", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := now.Add(time.Hour); !got.Equal(want) {
		t.Fatalf("NextWake(@hourly) = %v, want %v", got, want)
	}

	if _, err := NextWake("every tuesday", now); err == nil {
		t.Fatal("expected error for invalid expression")
	}
}
