package imageasset

import (
	"errors"
	"testing"

	"docc_render/model"
)

func TestParseDensity(t *testing.T) {
	tests := []struct {
		name    string
		traits  []string
		want    int
		wantErr bool
	}{
		{"No traits", nil, 1, false},
		{"Appearance only", []string{"light"}, 1, false},
		{"One x", []string{"1x"}, 1, false},
		{"Two x with appearance", []string{"2x", "dark"}, 2, false},
		{"Appearance first", []string{"light", "3x"}, 3, false},
		{"Unknown trait ignored", []string{"retina", "2x"}, 2, false},
		{"Uppercase is not a density", []string{"2X"}, 1, false},
		{"Duplicate density", []string{"1x", "2x"}, 0, true},
		{"Same density twice", []string{"2x", "2x"}, 0, true},
		{"Zero density", []string{"0x"}, 0, true},
		{"Fractional density", []string{"1.5x"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDensity(tt.traits)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDensity(%v) = %d, want error", tt.traits, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDensity(%v) unexpected error: %v", tt.traits, err)
			}
			if got != tt.want {
				t.Errorf("ParseDensity(%v) = %d, want %d", tt.traits, got, tt.want)
			}
		})
	}
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		name    string
		traits  []string
		want    bool
		wantErr bool
	}{
		{"Untagged", []string{"1x"}, false, false},
		{"Light", []string{"2x", "light"}, false, false},
		{"Dark", []string{"dark", "2x"}, true, false},
		{"Unknown appearance ignored", []string{"sepia"}, false, false},
		{"Light and dark", []string{"light", "dark"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsDark(tt.traits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsDark(%v) error = %v, wantErr %v", tt.traits, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsDark(%v) = %v, want %v", tt.traits, got, tt.want)
			}
		})
	}
}

func urls(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Variant.URL)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPartition(t *testing.T) {
	variants := []model.Variant{
		{Traits: []string{"3x", "light"}, URL: "light-3x"},
		{Traits: []string{"2x", "dark"}, URL: "dark-2x"},
		{Traits: []string{"1x"}, URL: "plain-1x"},
		{Traits: []string{"1x", "dark"}, URL: "dark-1x"},
		{Traits: []string{"light"}, URL: "light-default"},
	}

	light, dark, err := Partition(variants)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	wantLight := []string{"plain-1x", "light-default", "light-3x"}
	if got := urls(light); !equalStrings(got, wantLight) {
		t.Errorf("Expected light %v, got %v", wantLight, got)
	}
	wantDark := []string{"dark-1x", "dark-2x"}
	if got := urls(dark); !equalStrings(got, wantDark) {
		t.Errorf("Expected dark %v, got %v", wantDark, got)
	}
	if light[1].Density != 1 {
		t.Errorf("Expected variant without density trait to be 1x, got %dx", light[1].Density)
	}
}

func TestPartition_InvalidVariant(t *testing.T) {
	variants := []model.Variant{
		{Traits: []string{"1x"}, URL: "ok.png"},
		{Traits: []string{"1x", "2x"}, URL: "bad.png"},
	}

	_, _, err := Partition(variants)
	var invalid *InvalidVariantError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidVariantError, got %v", err)
	}
	if invalid.Index != 1 || invalid.URL != "bad.png" {
		t.Errorf("Expected error on variant 1 (bad.png), got %d (%s)", invalid.Index, invalid.URL)
	}
}

func TestBuildSrcset(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		want       string
	}{
		{"Empty", nil, ""},
		{"Single", []Candidate{{URL: "a.png", Density: 2}}, "a.png 2x"},
		{"Two", []Candidate{
			{URL: "a.png", Density: 1},
			{URL: "b.png", Density: 3},
		}, "a.png 1x, b.png 3x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSrcset(tt.candidates); string(got) != tt.want {
				t.Errorf("BuildSrcset() = %q, want %q", got, tt.want)
			}
		})
	}
}
