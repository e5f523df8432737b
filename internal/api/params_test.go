package api

import "testing"

func TestParseLimit(t *testing.T) {
	tests := map[string]int{
		"":    0,
		"5":   5,
		"0":   0,
		"-1":  0,
		"abc": 0,
		"3.5": 0,
	}
	for raw, want := range tests {
		if got := parseLimit(raw); got != want {
			t.Errorf("parseLimit(%q) = %d, want %d", raw, got, want)
		}
	}
}
