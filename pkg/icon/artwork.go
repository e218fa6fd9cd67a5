package icon

import (
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"sync"
)

// Artwork piece names. Every Loader must resolve these; a piece it cannot
// resolve makes the depending icon unavailable.
const (
	ArtOutline  = "outline"
	ArtLeftCap  = "left-cap"
	ArtFill     = "fill"
	ArtRightCap = "right-cap"
	ArtCharging = "charging"
	ArtCharged  = "charged"
	ArtLow      = "low"
	// Diagnostic glyphs for reader errors.
	ArtDeadConnection = "dead-connection"
	ArtDeadService    = "dead-service"
)

// Loader resolves artwork pieces by name. ok=false means the piece is
// missing, which degrades to "no icon" rather than an error.
type Loader interface {
	Load(name string) (image.Image, bool)
}

// Canvas geometry shared by all artwork pieces. The outline is the icon
// canvas; caps and fill are capacity-bar pieces drawn inside it.
const (
	canvasW = 36
	canvasH = 16

	barTop    = 4
	barBottom = canvasH - 4
)

var pieceColor = color.RGBA{A: 0xff}

// proceduralLoader renders the artwork in code so no binary assets need to
// ship with the binary. Pieces are rendered once and cached.
type proceduralLoader struct {
	mu     sync.Mutex
	pieces map[string]image.Image
}

// DefaultLoader returns the built-in artwork set.
func DefaultLoader() Loader {
	return &proceduralLoader{pieces: make(map[string]image.Image)}
}

func (l *proceduralLoader) Load(name string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if img, ok := l.pieces[name]; ok {
		return img, true
	}

	var img image.Image
	switch name {
	case ArtOutline:
		img = renderOutline()
	case ArtLeftCap, ArtFill, ArtRightCap:
		img = renderBarPiece()
	case ArtCharging:
		img = renderBolt()
	case ArtCharged:
		img = renderCharged()
	case ArtLow:
		img = renderLow()
	case ArtDeadConnection:
		img = renderDeadConnection()
	case ArtDeadService:
		img = renderDeadService()
	default:
		return nil, false
	}

	l.pieces[name] = img
	return img, true
}

// FSLoader resolves artwork pieces as <name>.png files in an fs.FS, for
// users that want to replace the built-in drawings.
type FSLoader struct {
	FS fs.FS
}

func (l FSLoader) Load(name string) (image.Image, bool) {
	f, err := l.FS.Open(name + ".png")
	if err != nil {
		return nil, false
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, false
	}
	return img, true
}

func blankCanvas() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
}

func fillRect(img *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, pieceColor)
		}
	}
}

// renderOutline draws the battery body border and the terminal nub.
func renderOutline() image.Image {
	img := blankCanvas()
	body := image.Rect(0, 1, canvasW-3, canvasH-1)

	fillRect(img, image.Rect(body.Min.X, body.Min.Y, body.Max.X, body.Min.Y+1))
	fillRect(img, image.Rect(body.Min.X, body.Max.Y-1, body.Max.X, body.Max.Y))
	fillRect(img, image.Rect(body.Min.X, body.Min.Y, body.Min.X+1, body.Max.Y))
	fillRect(img, image.Rect(body.Max.X-1, body.Min.Y, body.Max.X, body.Max.Y))

	// terminal nub
	fillRect(img, image.Rect(canvasW-2, canvasH/2-3, canvasW, canvasH/2+3))

	return img
}

// renderBarPiece draws a single capacity-bar unit. Left cap, fill and right
// cap share the shape; the compositor stretches the fill piece.
func renderBarPiece() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, barBottom-barTop))
	for y := 0; y < barBottom-barTop; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, pieceColor)
		}
	}
	return img
}

// renderBolt draws the outline with a lightning bolt inside.
func renderBolt() image.Image {
	out := renderOutline().(*image.RGBA)

	// two slanted strokes meeting mid-canvas
	for i := 0; i < 6; i++ {
		out.Set(18-i, 3+i, pieceColor)
		out.Set(19-i, 3+i, pieceColor)
		out.Set(15+i, 7+i, pieceColor)
		out.Set(16+i, 7+i, pieceColor)
	}
	return out
}

// renderCharged draws the outline with a full capacity bar.
func renderCharged() image.Image {
	out := renderOutline().(*image.RGBA)
	fillRect(out, image.Rect(2, barTop-1, canvasW-5, barBottom+1))
	return out
}

// renderLow draws the outline with a sliver of charge at the left edge.
func renderLow() image.Image {
	out := renderOutline().(*image.RGBA)
	fillRect(out, image.Rect(2, barTop, 4, barBottom))
	return out
}

// renderDeadConnection draws the outline with an exclamation mark.
func renderDeadConnection() image.Image {
	out := renderOutline().(*image.RGBA)
	fillRect(out, image.Rect(16, 3, 18, 9))
	fillRect(out, image.Rect(16, 11, 18, 13))
	return out
}

// renderDeadService draws the outline with a cross.
func renderDeadService() image.Image {
	out := renderOutline().(*image.RGBA)
	for i := 0; i < 8; i++ {
		out.Set(13+i, 4+i, pieceColor)
		out.Set(14+i, 4+i, pieceColor)
		out.Set(20-i, 4+i, pieceColor)
		out.Set(21-i, 4+i, pieceColor)
	}
	return out
}
