// Package text holds the small English helpers used to phrase output.
package text

import "strings"

// Article returns "an" for words starting with a vowel letter or with "ho"
// (hour, honest), and "a" otherwise.
func Article(word string) string {
	w := strings.ToLower(word)
	if w == "" {
		return "a"
	}
	if strings.ContainsRune("aeiou", rune(w[0])) || strings.HasPrefix(w, "ho") {
		return "an"
	}
	return "a"
}

// WithArticle prefixes word with its article: "an apple".
func WithArticle(word string) string {
	return Article(word) + " " + word
}

// ItemList renders names as "a key", "a key and a lamp" or
// "a key, a lamp and an apple". An empty list renders as "".
func ItemList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return WithArticle(names[0])
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = WithArticle(n)
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
