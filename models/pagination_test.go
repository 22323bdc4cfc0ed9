package models

import "testing"

func TestCompositeCursorRoundTrip(t *testing.T) {
	encoded := EncodeCompositeCursor("2026-01-05T00:00:00Z", 42)
	dateTime, id := DecodeCompositeCursor(&encoded)
	if dateTime != "2026-01-05T00:00:00Z" || id != 42 {
		t.Fatalf("round trip failed: got %q, %d", dateTime, id)
	}
}

func TestDecodeCompositeCursor_Garbage(t *testing.T) {
	for _, bad := range []string{"", "not-base64!!", "bm9wZQ=="} {
		cursor := bad
		dateTime, id := DecodeCompositeCursor(&cursor)
		if dateTime != "" || id != 0 {
			t.Fatalf("expected zero values for %q, got %q, %d", bad, dateTime, id)
		}
	}
}

func TestDecodeCursor_Nil(t *testing.T) {
	decoded, err := DecodeCursor(nil)
	if err != nil || decoded != "" {
		t.Fatalf("expected empty cursor, got %q, %v", decoded, err)
	}
}
