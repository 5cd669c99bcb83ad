package suggest

import "testing"

func TestValidTerm(t *testing.T) {
	tests := []struct {
		term string
		want bool
	}{
		{"laptop", true},
		{"4k-tv", true},
		{"a", false},          // too short
		{"the", false},        // stop word
		{"off", false},        // stop word
		{"café", false},  // non-ascii
		{"50%", false},        // punctuation
		{"x1", true},
	}
	for _, tt := range tests {
		if got := validTerm(tt.term); got != tt.want {
			t.Errorf("validTerm(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Dell XPS-13 Laptop, 16GB!")
	want := []string{"dell", "xps-13", "laptop", "16gb"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenize_TrimsHyphens(t *testing.T) {
	got := tokenize("-edge- case-")
	want := []string{"edge", "case"}
	if len(got) != len(want) || got[0] != "edge" || got[1] != "case" {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}
