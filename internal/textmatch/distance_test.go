package textmatch

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"both empty", "", "", 0},
		{"empty vs word", "", "paris", 5},
		{"word vs empty", "paris", "", 5},
		{"equal", "paris", "paris", 0},
		{"substitution", "paris", "pariz", 1},
		{"insertion", "pari", "paris", 1},
		{"deletion", "pariss", "paris", 1},
		{"kitten sitting", "kitten", "sitting", 3},
		{"unicode", "café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Distance is symmetric.
			if got := Distance(tt.b, tt.a); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestDistanceSelfIsZero(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "日本語", "The Answer"} {
		if got := Distance(s, s); got != 0 {
			t.Errorf("Distance(%q, %q) = %d, want 0", s, s, got)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"one empty", "", "paris", 0.0},
		{"other empty", "paris", "", 0.0},
		{"identical", "paris", "paris", 1.0},
		{"one of five", "paris", "pariz", 0.8},
		{"disjoint", "ab", "xy", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySelfIsOne(t *testing.T) {
	for _, s := range []string{"", "x", "mount everest", "straße"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "zzzzzzzz"},
		{"completely", "different"},
		{"short", "a much longer string entirely"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, want within [0,1]", p[0], p[1], got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		caseS bool
		want  string
	}{
		{"trim and lower", "  Paris  ", false, "paris"},
		{"leading article the", "The Eiffel Tower", false, "eiffel tower"},
		{"leading article a", "a dog", false, "dog"},
		{"leading article an", "An apple", false, "apple"},
		{"article only at start", "kick the bucket", false, "kick the bucket"},
		{"punctuation stripped", "Don't panic!", false, "dont panic"},
		{"whitespace collapsed", "new   york    city", false, "new york city"},
		{"case preserved", "McDonald", true, "McDonald"},
		{"case sensitive keeps article rule", "The Hague", true, "Hague"},
		{"empty", "", false, ""},
		{"parens and quotes", `"Hello" (world)`, false, "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in, tt.caseS); got != tt.want {
				t.Errorf("Normalize(%q, %v) = %q, want %q", tt.in, tt.caseS, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  The  Quick,  Brown Fox!  ", "plain", "a b c"}
	for _, in := range inputs {
		once := Normalize(in, false)
		twice := Normalize(once, false)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
