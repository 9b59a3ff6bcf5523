package admin

import "strings"

// AddTag appends the trimmed tag unless it is blank or already present
// (exact, case-sensitive match). The input slice is never modified.
func AddTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" || HasTag(tags, tag) {
		return tags
	}
	out := make([]string, len(tags), len(tags)+1)
	copy(out, tags)
	return append(out, tag)
}

// RemoveTag filters every occurrence of tag out of tags.
func RemoveTag(tags []string, tag string) []string {
	if !HasTag(tags, tag) {
		return tags
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
