package imageasset

import (
	"html/template"
	"strconv"
	"strings"
)

// BuildSrcset formats density-ordered candidates as "<url> <d>x" entries
// joined by ", ". Candidate URLs are already normalized, so the result is
// emitted as is. An empty list yields "".
func BuildSrcset(candidates []Candidate) template.Srcset {
	entries := make([]string, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, c.URL+" "+strconv.Itoa(c.Density)+"x")
	}
	return template.Srcset(strings.Join(entries, ", "))
}
