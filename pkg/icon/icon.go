// Package icon composites the menu-bar battery icon from cached artwork
// pieces based on the current battery state.
package icon

import (
	"bytes"
	"image"
	"image/png"

	pkgerrors "github.com/pkg/errors"
)

// Icon is a renderable status-bar image. Template icons are tinted by the
// host menu bar instead of drawn literally.
type Icon struct {
	Image    image.Image
	Template bool
}

// PNG encodes the icon for consumers that take raw image bytes, like the
// systray library.
func (i *Icon) PNG() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, i.Image); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to encode icon")
	}
	return buf.Bytes(), nil
}
