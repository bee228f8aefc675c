package util

import (
	"testing"
	"time"
)

func TestParseLocalDateTime(t *testing.T) {
	got, err := ParseLocalDateTime("2025-06-10", "14:30", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseLocalDateTimeDefaultsToNoon(t *testing.T) {
	got, err := ParseLocalDateTime("2025-06-10", "", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 12 || got.Minute() != 0 {
		t.Fatalf("expected noon, got %v", got)
	}
}

func TestParseLocalDateTimeBadInput(t *testing.T) {
	if _, err := ParseLocalDateTime("June 10", "14:30", time.UTC); err == nil {
		t.Fatalf("expected error")
	}
}
