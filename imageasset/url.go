package imageasset

import (
	"fmt"
	"strings"
)

// NormalizeURL percent-escapes the bytes of a variant URL that may not appear
// verbatim in a src or srcset attribute: whitespace, control and non-ASCII
// bytes, quotes and brackets, and commas at either end (a srcset candidate
// cannot start or end with one). Existing escapes are kept, so the result is
// stable under repeated normalization.
//
// Only relative URLs, http(s) and data:image/ URLs are accepted.
func NormalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if scheme, rest, ok := splitScheme(raw); ok {
		switch strings.ToLower(scheme) {
		case "http", "https":
		case "data":
			if !strings.HasPrefix(strings.ToLower(rest), "image/") {
				return "", fmt.Errorf("data url is not an image")
			}
		default:
			return "", fmt.Errorf("unsupported url scheme %q", scheme)
		}
	}

	var b strings.Builder
	last := len(raw) - 1
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == ',' && (i == 0 || i == last) {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		if keepInURL(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String(), nil
}

// keepInURL matches the set html/template leaves untouched when it normalizes
// a URL attribute.
func keepInURL(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', '%',
		'!', '#', '$', '&', '*', '+', ',', '/', ':', ';', '=', '?', '@', '[', ']':
		return true
	}
	return false
}

// splitScheme returns the scheme of an absolute URL. A colon after the first
// '/', '?' or '#' belongs to the path and does not start a scheme.
func splitScheme(raw string) (scheme, rest string, ok bool) {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9', c == '+', c == '-', c == '.':
			if i == 0 {
				return "", "", false
			}
		case c == ':':
			if i == 0 {
				return "", "", false
			}
			return raw[:i], raw[i+1:], true
		default:
			return "", "", false
		}
	}
	return "", "", false
}
