package utils

import "testing"

func TestParseInt64(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		ok       bool
	}{
		{"0", 0, true},
		{"1024", 1024, true},
		{"-5", -5, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"12.5", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseInt64(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseInt64(%q) = (%d, %v), expected (%d, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024 * 1024, "1.0 GB"},
		{3840755982336, "3.5 TB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, expected %q", tt.bytes, got, tt.expected)
		}
	}
}
