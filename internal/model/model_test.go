package model

import "testing"

func TestBitrateArg(t *testing.T) {
	tests := []struct {
		quality AudioQuality
		want    string
	}{
		{Quality128, "128K"},
		{Quality192, "192K"},
		{Quality256, "256K"},
		{Quality320, "320K"},
		{AudioQuality("64k"), "320K"},
		{AudioQuality(""), "320K"},
		{AudioQuality("320K"), "320K"},
	}
	for _, tt := range tests {
		if got := tt.quality.BitrateArg(); got != tt.want {
			t.Errorf("BitrateArg(%q) = %q, want %q", tt.quality, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, q := range Qualities() {
		if !q.Valid() {
			t.Errorf("Valid(%q) = false, want true", q)
		}
	}
	for _, q := range []AudioQuality{"", "64k", "320K", "high"} {
		if q.Valid() {
			t.Errorf("Valid(%q) = true, want false", q)
		}
	}
}
