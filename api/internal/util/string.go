package util

import "strings"

// StripCodeFences removes a ```json ... ``` wrapper some models add around JSON.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// SplitRunes cuts s into pieces of at most n runes. Each cut goes after the
// last newline or space in the back half of the window when there is one.
// Joining the pieces gives s back.
func SplitRunes(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	r := []rune(s)
	var out []string
	for len(r) > n {
		cut := n
		for i := n - 1; i >= n/2; i-- {
			if r[i] == '\n' || r[i] == ' ' {
				cut = i + 1
				break
			}
		}
		out = append(out, string(r[:cut]))
		r = r[cut:]
	}
	return append(out, string(r))
}
