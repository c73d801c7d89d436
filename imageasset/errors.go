package imageasset

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoVariants = errors.New("image asset has no variants")

// InvalidVariantError reports a descriptor whose traits cannot be resolved to
// a single density and appearance, or whose URL cannot be rendered.
type InvalidVariantError struct {
	Index  int
	URL    string
	Traits []string
	Reason string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("invalid variant %d (%s) traits=[%s]: %s", e.Index, e.URL, strings.Join(e.Traits, ","), e.Reason)
}
