package imageasset

import (
	"bytes"
	"html/template"
	"io"
	"sync/atomic"

	"docc_render/model"
)

const (
	DarkMediaQuery  = "(prefers-color-scheme: dark)"
	FallbackClass   = "fallback"
	FallbackTitle   = "Image failed to load"
	heightAttrValue = "auto"
)

type State int

const (
	StatePrimary State = iota
	StateFallback
)

func (s State) String() string {
	switch s {
	case StatePrimary:
		return "primary"
	case StateFallback:
		return "fallback"
	}
	return "unknown"
}

var templates = template.Must(template.New("imageasset").Parse(`
{{- define "picture" -}}
<picture>
{{- if .Image.HasDark }}<source media="{{ .Media }}" srcset="{{ .Image.DarkSrcset }}">{{ end -}}
<img src="{{ .Image.DefaultSrc }}" srcset="{{ .Image.DefaultSrcset }}" {{ if .Image.Width }}width="{{ .Image.Width }}" {{ end }}height="{{ .Height }}" alt="{{ .Image.Alt }}"
{{- if .ErrorHook }} data-load-error="{{ .ErrorHook }}"{{ end }}></picture>
{{- end -}}

{{- define "fallback" -}}
<img class="{{ .Class }}"{{ if .Src }} src="{{ .Src }}"{{ end }} alt="{{ .Alt }}" title="{{ .Title }}">
{{- end -}}
`))

type Option func(*ImageAsset)

// WithFallbackSrc sets the placeholder image shown once loading failed.
func WithFallbackSrc(src string) Option {
	return func(a *ImageAsset) { a.fallbackSrc = src }
}

// WithLoadErrorHook tags the primary <img> with the endpoint the page script
// reports load errors to.
func WithLoadErrorHook(url string) Option {
	return func(a *ImageAsset) { a.errorHook = url }
}

// ImageAsset is one mounted image. It starts in StatePrimary and moves to
// StateFallback on the first load error; it never moves back.
type ImageAsset struct {
	variants    []model.Variant
	alt         string
	image       model.RenderedImage
	fallbackSrc string
	errorHook   string
	failed      atomic.Bool
}

func New(variants []model.Variant, alt string, opts ...Option) (*ImageAsset, error) {
	image, err := Select(variants, alt)
	if err != nil {
		return nil, err
	}
	a := &ImageAsset{
		variants: append([]model.Variant(nil), variants...),
		alt:      alt,
		image:    image,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *ImageAsset) Variants() []model.Variant {
	return append([]model.Variant(nil), a.variants...)
}

func (a *ImageAsset) Alt() string { return a.alt }

func (a *ImageAsset) Image() model.RenderedImage { return a.image }

func (a *ImageAsset) State() State {
	if a.failed.Load() {
		return StateFallback
	}
	return StatePrimary
}

// HandleLoadError moves the asset to the fallback state. It reports whether
// this call performed the transition; later calls are no-ops.
func (a *ImageAsset) HandleLoadError() bool {
	return a.failed.CompareAndSwap(false, true)
}

// Render writes the markup for the current state.
func (a *ImageAsset) Render(w io.Writer) error {
	if a.failed.Load() {
		return templates.ExecuteTemplate(w, "fallback", struct {
			Class, Src, Alt, Title string
		}{FallbackClass, a.fallbackSrc, a.alt, FallbackTitle})
	}
	return templates.ExecuteTemplate(w, "picture", struct {
		Image     model.RenderedImage
		Media     string
		Height    string
		ErrorHook string
	}{a.image, DarkMediaQuery, heightAttrValue, a.errorHook})
}

func (a *ImageAsset) Markup() (template.HTML, error) {
	var buf bytes.Buffer
	if err := a.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
