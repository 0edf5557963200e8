package sources

import (
	"testing"
)

func TestFilterLabelBlockedAggregators(t *testing.T) {
	blocked := []string{"Google News", "Yahoo News", "MSN"}

	cases := []struct {
		label    string
		expected string
	}{
		{"Google News", ""},
		{"google news", ""},
		{"Google News Punjab", ""}, // block-list entry contained in label
		{"Yahoo", ""},              // label contained in block-list entry
		{"The Tribune", "The Tribune"},
		{"ABP Sanjha", "ABP Sanjha"},
	}

	for _, tc := range cases {
		if got := FilterLabel(tc.label, blocked); got != tc.expected {
			t.Errorf("FilterLabel(%q) = %q, expected %q", tc.label, got, tc.expected)
		}
	}
}

func TestFilterLabelEmptyInput(t *testing.T) {
	blocked := []string{"Google News"}

	if got := FilterLabel("", blocked); got != "" {
		t.Errorf("Expected empty string for empty input, got %q", got)
	}
	if got := FilterLabel("   ", blocked); got != "" {
		t.Errorf("Expected empty string for whitespace input, got %q", got)
	}
}

func TestFilterLabelNoBlockList(t *testing.T) {
	if got := FilterLabel("Any Provider", nil); got != "Any Provider" {
		t.Errorf("Expected label to pass through with empty block-list, got %q", got)
	}
}
