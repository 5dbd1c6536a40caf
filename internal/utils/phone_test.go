package utils

import (
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"919876543210", "9876543210"},
		{"+91 98765 43210", "9876543210"},
		{"98765 43210", "9876543210"},
		{"(987) 654-3210", "9876543210"},
		{"9198765432", "9198765432"}, // 10 digits starting with 91 stay intact
		{"12345", "12345"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"919876543210", "+91-98765-43210", "98765 43210", "abc123", ""}
	for _, in := range inputs {
		once := NormalizePhone(in)
		if twice := NormalizePhone(once); twice != once {
			t.Errorf("NormalizePhone not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"9876543210", "0000000000"}
	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "12345", "98765432101", "98765o3210", "98765 3210"}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
