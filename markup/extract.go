package markup

import (
	"fmt"
	"net/url"
	"path"
	"strconv"

	"docc_render/imageasset"
	"docc_render/model"

	"golang.org/x/net/html"
)

// IdentifierAttr names the attribute that carries an asset identifier in
// imported markup. Without it the identifier is the file name of the first
// variant url.
const IdentifierAttr = "data-identifier"

// ExtractAssets imports the responsive images of a page. Each <picture>
// becomes one asset: a <source> with the dark color-scheme media query yields
// dark variants and its <img> yields light ones. A bare <img> with a src or
// srcset becomes an asset with light variants only. Fallback images are
// skipped. Asset ids are left empty.
func ExtractAssets(doc *html.Node) ([]model.Asset, error) {
	assets := make([]model.Asset, 0)
	seen := make(map[*html.Node]bool)

	for _, picture := range FindElements(doc, "picture") {
		var darkSrcset string
		for _, source := range FindElements(picture, "source") {
			if media, _ := Attr(source, "media"); media == imageasset.DarkMediaQuery {
				darkSrcset, _ = Attr(source, "srcset")
				break
			}
		}
		img := First(picture, "img")
		if img != nil {
			seen[img] = true
		}
		asset, err := extractAsset(img, darkSrcset)
		if err != nil {
			return nil, err
		}
		if len(asset.Variants) > 0 {
			assets = append(assets, asset)
		}
	}

	for _, img := range FindElements(doc, "img") {
		if seen[img] || HasClass(img, imageasset.FallbackClass) {
			continue
		}
		asset, err := extractAsset(img, "")
		if err != nil {
			return nil, err
		}
		if len(asset.Variants) > 0 {
			assets = append(assets, asset)
		}
	}
	return assets, nil
}

func extractAsset(img *html.Node, darkSrcset string) (model.Asset, error) {
	var asset model.Asset
	var size model.Size
	var lightSrcset string

	if img != nil {
		asset.Alt, _ = Attr(img, "alt")
		asset.Identifier, _ = Attr(img, IdentifierAttr)
		if w, ok := Attr(img, "width"); ok {
			size.Width, _ = strconv.Atoi(w)
		}
		lightSrcset, _ = Attr(img, "srcset")
		if lightSrcset == "" {
			lightSrcset, _ = Attr(img, "src")
		}
	}

	dark, err := ParseSrcset(darkSrcset)
	if err != nil {
		return model.Asset{}, fmt.Errorf("dark source: %w", err)
	}
	// A picture with dark variants only renders them on the <img> as well.
	if lightSrcset == darkSrcset {
		lightSrcset = ""
	}
	light, err := ParseSrcset(lightSrcset)
	if err != nil {
		return model.Asset{}, fmt.Errorf("img: %w", err)
	}

	for _, e := range light {
		asset.Variants = append(asset.Variants, model.Variant{
			Traits: []string{densityTrait(e.Density)},
			URL:    e.URL,
			Size:   size,
		})
	}
	for _, e := range dark {
		asset.Variants = append(asset.Variants, model.Variant{
			Traits: []string{densityTrait(e.Density), imageasset.TraitDark},
			URL:    e.URL,
			Size:   size,
		})
	}
	if asset.Identifier == "" && len(asset.Variants) > 0 {
		asset.Identifier = identifierFromURL(asset.Variants[0].URL)
	}
	return asset, nil
}

func densityTrait(d int) string {
	return strconv.Itoa(d) + "x"
}

func identifierFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(raw)
}
