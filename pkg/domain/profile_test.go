package domain

import "testing"

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mixed case with punctuation", "My_Name!1", "my_name1"},
		{"already normal", "ana_01", "ana_01"},
		{"spaces stripped", "  jo hn ", "john"},
		{"accents stripped", "José", "jos"},
		{"all invalid", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeUsername(tt.in); got != tt.want {
				t.Errorf("NormalizeUsername(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
