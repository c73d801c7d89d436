package imageasset

import (
	"html/template"

	"docc_render/model"
)

// Select derives the rendered image for a variant list. The <img> src is the
// lowest-density light or untagged variant, so clients without srcset support
// load the smallest asset. Dark variants only feed the alternate <source>,
// unless there are no light variants at all, in which case the <img> uses the
// dark list too.
func Select(variants []model.Variant, alt string) (model.RenderedImage, error) {
	if len(variants) == 0 {
		return model.RenderedImage{}, ErrNoVariants
	}
	light, dark, err := Partition(variants)
	if err != nil {
		return model.RenderedImage{}, err
	}

	primary := light
	if len(primary) == 0 {
		primary = dark
	}

	img := model.RenderedImage{
		DefaultSrc:    template.URL(primary[0].URL),
		DefaultSrcset: BuildSrcset(primary),
		Width:         primary[0].Variant.Size.Width,
		Alt:           alt,
	}
	if len(dark) > 0 {
		img.HasDark = true
		img.DarkSrc = template.URL(dark[0].URL)
		img.DarkSrcset = BuildSrcset(dark)
	}
	return img, nil
}
