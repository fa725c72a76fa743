package config

import (
	"testing"
	"time"
)

// TestParseIntEnv checks integer parsing and the fallback path.
func TestParseIntEnv(t *testing.T) {
	t.Setenv("NEXUS_TEST_INT", "42")

	got, err := parseIntEnv("NEXUS_TEST_INT", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	got, err = parseIntEnv("NEXUS_TEST_INT_MISSING", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

// TestParseIntEnvInvalid checks that junk values are rejected.
func TestParseIntEnvInvalid(t *testing.T) {
	t.Setenv("NEXUS_TEST_INT", "not-a-number")

	if _, err := parseIntEnv("NEXUS_TEST_INT", 7); err == nil {
		t.Fatal("expected error for non-integer value")
	}
}

// TestParseDurationEnv checks duration parsing.
func TestParseDurationEnv(t *testing.T) {
	t.Setenv("NEXUS_TEST_DUR", "90s")

	got, err := parseDurationEnv("NEXUS_TEST_DUR", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}
