package admin

import (
	"strconv"
	"strings"
)

// ParseInt reads the leading integer of s the way form inputs are read:
// "12", " 7px" and "3.9" give 12, 7 and 3; anything without leading digits,
// or out of int range, gives 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
