package output

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// sortedKeys returns the keys of counts, highest count first
func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	return keys
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}
