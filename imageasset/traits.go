// Package imageasset selects among the density and appearance variants of a
// documentation image and renders them as a responsive <picture> element,
// downgrading to a fallback image once the browser reports a load failure.
package imageasset

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"docc_render/model"
)

const (
	TraitLight = "light"
	TraitDark  = "dark"

	defaultDensity = 1
)

// densityPattern matches anything shaped like a density trait, including
// malformed ones such as "0x" or "1.5x" that are rejected by ParseDensity.
var densityPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]+x$`)

// Candidate is a variant with its traits resolved and its URL normalized for
// use in src and srcset attributes.
type Candidate struct {
	Variant model.Variant
	URL     string
	Density int
	Dark    bool
}

// ParseDensity returns the pixel density a variant targets. Variants without a
// density trait are 1x.
func ParseDensity(traits []string) (int, error) {
	density := 0
	for _, trait := range traits {
		if !densityPattern.MatchString(trait) {
			continue
		}
		if density != 0 {
			return 0, fmt.Errorf("more than one density trait")
		}
		n, err := strconv.Atoi(strings.TrimSuffix(trait, "x"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("malformed density trait %q", trait)
		}
		density = n
	}
	if density == 0 {
		return defaultDensity, nil
	}
	return density, nil
}

// IsDark reports whether traits carry the dark appearance. Traits that are
// neither density nor appearance are ignored.
func IsDark(traits []string) (bool, error) {
	var light, dark bool
	for _, trait := range traits {
		switch trait {
		case TraitLight:
			light = true
		case TraitDark:
			dark = true
		}
	}
	if light && dark {
		return false, fmt.Errorf("both %s and %s appearance traits", TraitLight, TraitDark)
	}
	return dark, nil
}

func resolve(index int, v model.Variant) (Candidate, error) {
	density, err := ParseDensity(v.Traits)
	if err != nil {
		return Candidate{}, &InvalidVariantError{Index: index, URL: v.URL, Traits: v.Traits, Reason: err.Error()}
	}
	dark, err := IsDark(v.Traits)
	if err != nil {
		return Candidate{}, &InvalidVariantError{Index: index, URL: v.URL, Traits: v.Traits, Reason: err.Error()}
	}
	u, err := NormalizeURL(v.URL)
	if err != nil {
		return Candidate{}, &InvalidVariantError{Index: index, URL: v.URL, Traits: v.Traits, Reason: err.Error()}
	}
	return Candidate{Variant: v, URL: u, Density: density, Dark: dark}, nil
}

// Partition splits variants into light-or-untagged and dark candidates, each
// ordered by ascending density. Equal densities keep their input order.
func Partition(variants []model.Variant) (light, dark []Candidate, err error) {
	for i, v := range variants {
		c, err := resolve(i, v)
		if err != nil {
			return nil, nil, err
		}
		if c.Dark {
			dark = append(dark, c)
		} else {
			light = append(light, c)
		}
	}
	byDensity := func(a, b Candidate) int { return cmp.Compare(a.Density, b.Density) }
	slices.SortStableFunc(light, byDensity)
	slices.SortStableFunc(dark, byDensity)
	return light, dark, nil
}
