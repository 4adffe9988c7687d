package catalog

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  bool
	}{
		{"substring", "Trump", "Trump wins 2024", true},
		{"substring case-insensitive", "tRuMp", "Will TRUMP win?", true},
		{"typo via similarity", "Trmup", "Trump", true},
		{"unrelated", "xyz123", "Trump wins election", false},
		{"empty query", "", "Trump wins election", false},
		{"empty text", "Trump", "", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.query, tt.text); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "abcd", "abcd", 1},
		{"disjoint", "abc", "xyz", 0},
		{"empty", "", "", 0},
		// blocks: "tr" + "m" + "p" out of 5+5 runes.
		{"transposed", "trmup", "trump", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
