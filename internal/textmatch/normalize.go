package textmatch

import "strings"

// articles are stripped from the start of answers during normalization.
var articles = []string{"a ", "an ", "the "}

// punctuation removed during normalization.
const punctuation = `.,!?;:'"()`

// Normalize prepares free-text answers for comparison: trims surrounding
// whitespace, strips a single leading article ("a", "an", "the"),
// removes common punctuation, collapses whitespace runs to single
// spaces, and lowercases unless caseSensitive is set.
func Normalize(text string, caseSensitive bool) string {
	s := strings.TrimSpace(text)

	// Strip one leading article, case-insensitively.
	lower := strings.ToLower(s)
	for _, art := range articles {
		if strings.HasPrefix(lower, art) {
			s = s[len(art):]
			break
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = strings.Join(strings.Fields(s), " ")

	if !caseSensitive {
		s = strings.ToLower(s)
	}
	return s
}
