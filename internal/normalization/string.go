package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// ParseStatusLabel turns loose UI labels like "In Progress" into their
// canonical hyphenated form ("in-progress").
func ParseStatusLabel(input string) string {
	normalized := ParseInputString(input)
	normalized = strings.Join(strings.Fields(normalized), "-")
	return normalized
}

func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}
