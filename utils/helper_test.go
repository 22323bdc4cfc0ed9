package utils

import "testing"

func TestParseDecimal_AcceptsFormattedStrings(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"20000", "20000"},
		{"20,000", "20000"},
		{"SAR 20,000", "20000"},
		{"SAR -20,000", "-20000"},
		{"  sr 1,234.50  ", "1234.5"},
	}
	for _, tc := range cases {
		d, err := ParseDecimal(tc.in)
		if err != nil {
			t.Fatalf("ParseDecimal(%q) error: %v", tc.in, err)
		}
		if d.String() != tc.expected {
			t.Fatalf("ParseDecimal(%q) expected %s, got %s", tc.in, tc.expected, d.String())
		}
	}
}

func TestParseDecimal_RejectsEmpty(t *testing.T) {
	if _, err := ParseDecimal("   "); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"owner@daftar.sa", true},
		{"a.b+c@example.co", true},
		{"not-an-email", false},
		{"@missing.local", false},
	}
	for _, tc := range cases {
		if got := IsValidEmail(tc.in); got != tc.valid {
			t.Fatalf("IsValidEmail(%q) expected %v, got %v", tc.in, tc.valid, got)
		}
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestDereferencePtr(t *testing.T) {
	limit := 25
	if got := DereferencePtr(&limit, 40); got != 25 {
		t.Fatalf("expected pointer value 25, got %d", got)
	}
	if got := DereferencePtr[int](nil, 40); got != 40 {
		t.Fatalf("expected default 40, got %d", got)
	}
	if got := DereferencePtr[string](nil); got != "" {
		t.Fatalf("expected zero value, got %q", got)
	}
}

func TestNewTrueNewFalse(t *testing.T) {
	if v := NewTrue(); v == nil || !*v {
		t.Fatal("NewTrue must point at true")
	}
	if v := NewFalse(); v == nil || *v {
		t.Fatal("NewFalse must point at false")
	}
}
