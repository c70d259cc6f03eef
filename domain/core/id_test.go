package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to report IsEmpty")
	}
}

func TestParseRequestID(t *testing.T) {
	valid := NewID().String()
	id, err := ParseRequestID("  " + valid + " ")
	if err != nil {
		t.Fatalf("Expected valid request ID, got error: %v", err)
	}
	if id.String() != valid {
		t.Errorf("Expected %s, got %s", valid, id)
	}

	for _, bad := range []string{"", "   ", "not-a-uuid", "<script>"} {
		if _, err := ParseRequestID(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
