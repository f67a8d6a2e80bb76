package main

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short unchanged", "short", 10, "short"},
		{"exact length unchanged", "exactly ten", 11, "exactly ten"},
		{"long ascii", "a very long video title indeed", 10, "a very ..."},
		{"multi-byte runes", "日本語のタイトルが長い場合でも壊れない", 10, "日本語のタイト..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	if !isEmail("a@b.c") {
		t.Error("expected a@b.c to read as an email")
	}
	if isEmail("alice") {
		t.Error("expected a bare user name not to read as an email")
	}
}
