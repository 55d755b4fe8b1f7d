package products

import "strings"

const listSep = ", "

// JoinList is the wire form of a multi-value field.
func JoinList(items []string) string {
	return strings.Join(items, listSep)
}

// SplitList reverses JoinList. Tokens are trimmed and empty ones dropped,
// so a value that itself contains a comma comes back as two values.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
