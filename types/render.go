package types

import "strings"

// Title renders an identifier like "marcus_aurelius" as "Marcus Aurelius".
// Presentation only; matching always uses the raw id.
func Title(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
