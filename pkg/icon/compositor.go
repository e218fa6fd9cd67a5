package icon

import (
	"image"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/battray/battray/pkg/powerinfo"
	"github.com/battray/battray/pkg/powersource"
)

// Capacity bar geometry. The bar grows in discrete units so small charge
// fluctuations do not redraw the icon.
const (
	// drawingPrecision is the percentage covered by one capacity unit.
	drawingPrecision = 7.5
	// capacityUnitWidth is the pixel width of one capacity unit.
	capacityUnitWidth = 2
	// capacityInset is the gap between the outline and the bar.
	capacityInset = 2
)

// Compositor builds status icons from artwork pieces. It memoizes the last
// (state, icon) pair: equal consecutive states return the identical icon
// without recompositing.
type Compositor struct {
	artwork Loader

	mu          sync.Mutex
	cachedState *powerinfo.BatteryState
	cachedIcon  *Icon
}

// NewCompositor returns a Compositor over the given artwork set.
func NewCompositor(artwork Loader) *Compositor {
	return &Compositor{artwork: artwork}
}

// Icon returns the status icon for the given state, or nil when a required
// artwork piece is missing.
func (c *Compositor) Icon(state powerinfo.BatteryState) *Icon {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedState != nil && *c.cachedState == state {
		return c.cachedIcon
	}

	ic := c.composite(state)
	if ic == nil {
		return nil
	}

	s := state
	c.cachedState = &s
	c.cachedIcon = ic
	return ic
}

func (c *Compositor) composite(state powerinfo.BatteryState) *Icon {
	switch state.Mode {
	case powerinfo.Charging:
		return c.fixed(ArtCharging)
	case powerinfo.PluggedAndCharged:
		return c.fixed(ArtCharged)
	default:
		return c.dischargingIcon(state.Percentage)
	}
}

func (c *Compositor) fixed(name string) *Icon {
	img, ok := c.artwork.Load(name)
	if !ok {
		return nil
	}
	return &Icon{Image: img, Template: true}
}

// capacityUnits is the number of capacity-bar units for a percentage.
func capacityUnits(pct int) float64 {
	return math.Round(float64(pct) / drawingPrecision)
}

// useLowGlyph reports whether the bar is too narrow to composite without
// degenerate cap artifacts.
func useLowGlyph(units float64) bool {
	return units < 2
}

func (c *Compositor) dischargingIcon(pct int) *Icon {
	units := capacityUnits(pct)
	if useLowGlyph(units) {
		return c.fixed(ArtLow)
	}

	outline, ok := c.artwork.Load(ArtOutline)
	if !ok {
		return nil
	}
	left, ok := c.artwork.Load(ArtLeftCap)
	if !ok {
		return nil
	}
	fill, ok := c.artwork.Load(ArtFill)
	if !ok {
		return nil
	}
	right, ok := c.artwork.Load(ArtRightCap)
	if !ok {
		return nil
	}

	canvas := image.NewRGBA(outline.Bounds())
	draw.Draw(canvas, canvas.Bounds(), outline, outline.Bounds().Min, draw.Src)

	barWidth := int(units) * capacityUnitWidth
	bar := image.Rect(
		capacityInset,
		barTop,
		capacityInset+barWidth,
		barBottom,
	)
	drawThreePartImage(canvas, bar, left, fill, right)

	return &Icon{Image: canvas, Template: true}
}

// ErrorIcon maps the two reader error kinds to fixed diagnostic icons. Any
// other error, or nil, yields no icon.
func (c *Compositor) ErrorIcon(err error) *Icon {
	switch err {
	case powersource.ErrConnectionAlreadyOpen:
		return c.fixed(ArtDeadConnection)
	case powersource.ErrServiceNotFound:
		return c.fixed(ArtDeadService)
	default:
		return nil
	}
}

// drawThreePartImage draws a horizontal capacity bar into rect on dst: the
// start cap at the left edge, the end cap at the right edge, and the fill
// stretched across the middle. This is the single compositing primitive;
// callers never place the pieces individually.
func drawThreePartImage(dst draw.Image, rect image.Rectangle, start, fill, end image.Image) {
	sw := start.Bounds().Dx()
	ew := end.Bounds().Dx()

	startRect := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+sw, rect.Max.Y)
	endRect := image.Rect(rect.Max.X-ew, rect.Min.Y, rect.Max.X, rect.Max.Y)
	fillRect := image.Rect(startRect.Max.X, rect.Min.Y, endRect.Min.X, rect.Max.Y)

	xdraw.NearestNeighbor.Scale(dst, startRect, start, start.Bounds(), xdraw.Over, nil)
	if fillRect.Dx() > 0 {
		xdraw.NearestNeighbor.Scale(dst, fillRect, fill, fill.Bounds(), xdraw.Over, nil)
	}
	xdraw.NearestNeighbor.Scale(dst, endRect, end, end.Bounds(), xdraw.Over, nil)
}
