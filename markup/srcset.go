package markup

import (
	"fmt"
	"strconv"
	"strings"
)

const srcsetSpace = " \t\n\f\r"

type SrcsetEntry struct {
	URL     string
	Density int
}

// ParseSrcset reads a density srcset ("a.png 1x, b.png 2x"). An entry without
// a descriptor is 1x. Width descriptors are not supported.
//
// Candidates are split the way browsers split them: a URL runs to the next
// whitespace and may contain commas (data URLs do); only commas ending a URL
// or following its descriptor separate candidates.
func ParseSrcset(srcset string) ([]SrcsetEntry, error) {
	var entries []SrcsetEntry
	s := srcset
	for {
		s = strings.TrimLeft(s, srcsetSpace+",")
		if s == "" {
			return entries, nil
		}

		end := strings.IndexAny(s, srcsetSpace)
		if end < 0 {
			end = len(s)
		}
		url := s[:end]
		s = s[end:]

		var descriptor string
		if trimmed := strings.TrimRight(url, ","); trimmed != url {
			url = trimmed
		} else {
			comma := strings.IndexByte(s, ',')
			if comma < 0 {
				comma = len(s)
			}
			descriptor = s[:comma]
			s = s[comma:]
		}

		density, err := parseDensityDescriptor(descriptor)
		if err != nil {
			return nil, fmt.Errorf("srcset entry %q: %w", url, err)
		}
		entries = append(entries, SrcsetEntry{URL: url, Density: density})
	}
}

func parseDensityDescriptor(descriptor string) (int, error) {
	fields := strings.Fields(descriptor)
	switch len(fields) {
	case 0:
		return 1, nil
	case 1:
	default:
		return 0, fmt.Errorf("malformed descriptor %q", strings.TrimSpace(descriptor))
	}
	d := fields[0]
	if !strings.HasSuffix(d, "x") {
		return 0, fmt.Errorf("unsupported descriptor %q", d)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(d, "x"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("malformed density %q", d)
	}
	return n, nil
}
