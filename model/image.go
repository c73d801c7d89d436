package model

import "html/template"

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Variant is one candidate asset of an image, tagged with density ("2x") and
// appearance ("light", "dark") traits.
type Variant struct {
	Traits []string `json:"traits"`
	URL    string   `json:"url"`
	Size   Size     `json:"size"`
}

type Asset struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Alt        string    `json:"alt"`
	Variants   []Variant `json:"variants"`
}

// RenderedImage is derived from an Asset's variants every time it is
// rendered. It is never stored. Sources are normalized before they are typed
// as trusted URL and srcset content. Width is 0 when the default variant has
// no known size.
type RenderedImage struct {
	DefaultSrc    template.URL
	DefaultSrcset template.Srcset
	DarkSrc       template.URL
	DarkSrcset    template.Srcset
	HasDark       bool
	Width         int
	Alt           string
}
