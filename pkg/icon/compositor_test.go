package icon

import (
	"errors"
	"image"
	"testing"

	"github.com/battray/battray/pkg/powerinfo"
	"github.com/battray/battray/pkg/powersource"
)

// countingLoader wraps a Loader and counts resolved pieces, so tests can
// observe whether a compositing pass actually happened.
type countingLoader struct {
	inner Loader
	loads int
}

func (l *countingLoader) Load(name string) (image.Image, bool) {
	l.loads++
	return l.inner.Load(name)
}

// missingLoader drops one named piece from the underlying set.
type missingLoader struct {
	inner   Loader
	missing string
}

func (l missingLoader) Load(name string) (image.Image, bool) {
	if name == l.missing {
		return nil, false
	}
	return l.inner.Load(name)
}

func TestCompositorCacheReturnsIdenticalIcon(t *testing.T) {
	c := NewCompositor(DefaultLoader())

	first := c.Icon(powerinfo.NewDischarging(60))
	if first == nil {
		t.Fatal("expected an icon")
	}
	second := c.Icon(powerinfo.NewDischarging(60))
	if first != second {
		t.Error("equal states must return the identical cached icon")
	}
}

func TestCompositorCacheRecompositesOnceOnChange(t *testing.T) {
	loader := &countingLoader{inner: DefaultLoader()}
	c := NewCompositor(loader)

	c.Icon(powerinfo.NewDischarging(60))
	afterFirst := loader.loads
	if afterFirst == 0 {
		t.Fatal("first call should composite")
	}

	c.Icon(powerinfo.NewDischarging(60))
	if loader.loads != afterFirst {
		t.Errorf("cached state must not recomposite, loads %d -> %d", afterFirst, loader.loads)
	}

	c.Icon(powerinfo.NewDischarging(75))
	if loader.loads == afterFirst {
		t.Error("differing state must composite again")
	}
	afterSecond := loader.loads

	c.Icon(powerinfo.NewDischarging(75))
	if loader.loads != afterSecond {
		t.Error("second state should now be cached")
	}
}

func TestCompositorChargingStatesUseFixedArtwork(t *testing.T) {
	c := NewCompositor(DefaultLoader())

	if c.Icon(powerinfo.NewCharging(50)) == nil {
		t.Error("charging state should produce an icon")
	}
	if c.Icon(powerinfo.NewPluggedAndCharged()) == nil {
		t.Error("plugged-and-charged state should produce an icon")
	}
}

func TestCompositorMarksTemplate(t *testing.T) {
	c := NewCompositor(DefaultLoader())
	ic := c.Icon(powerinfo.NewDischarging(80))
	if ic == nil {
		t.Fatal("expected an icon")
	}
	if !ic.Template {
		t.Error("produced icons must be template images")
	}
}

func TestUseLowGlyphBoundary(t *testing.T) {
	if !useLowGlyph(1.99) {
		t.Error("1.99 units must substitute the low-battery glyph")
	}
	if useLowGlyph(2.0) {
		t.Error("2.0 units must composite the capacity bar")
	}
}

func TestCapacityUnits(t *testing.T) {
	tests := []struct {
		pct  int
		want float64
	}{
		{pct: 0, want: 0},
		{pct: 7, want: 1},
		{pct: 11, want: 1},
		{pct: 12, want: 2},
		{pct: 50, want: 7},
		{pct: 100, want: 13},
	}
	for _, tt := range tests {
		if got := capacityUnits(tt.pct); got != tt.want {
			t.Errorf("capacityUnits(%d) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestCompositorLowGlyphSubstitution(t *testing.T) {
	// 11% rounds to one capacity unit, below the two-unit minimum, so the
	// bar pieces must never be loaded.
	c := NewCompositor(missingLoader{inner: DefaultLoader(), missing: ArtLeftCap})

	ic := c.Icon(powerinfo.NewDischarging(11))
	if ic == nil {
		t.Fatal("low state should produce the low-battery glyph")
	}
}

func TestCompositorMissingArtwork(t *testing.T) {
	for _, missing := range []string{ArtOutline, ArtLeftCap, ArtFill, ArtRightCap} {
		c := NewCompositor(missingLoader{inner: DefaultLoader(), missing: missing})
		if ic := c.Icon(powerinfo.NewDischarging(80)); ic != nil {
			t.Errorf("missing %s artwork should yield nil icon", missing)
		}
	}

	c := NewCompositor(missingLoader{inner: DefaultLoader(), missing: ArtCharging})
	if ic := c.Icon(powerinfo.NewCharging(50)); ic != nil {
		t.Error("missing charging artwork should yield nil icon")
	}
}

func TestCompositorErrorIcons(t *testing.T) {
	c := NewCompositor(DefaultLoader())

	connIcon := c.ErrorIcon(powersource.ErrConnectionAlreadyOpen)
	if connIcon == nil {
		t.Fatal("connection error should map to a diagnostic icon")
	}
	svcIcon := c.ErrorIcon(powersource.ErrServiceNotFound)
	if svcIcon == nil {
		t.Fatal("service-not-found error should map to a diagnostic icon")
	}
	if connIcon.Image == svcIcon.Image {
		t.Error("the two error kinds must map to distinct artworks")
	}

	if c.ErrorIcon(nil) != nil {
		t.Error("nil error must yield no icon")
	}
	if c.ErrorIcon(errors.New("boom")) != nil {
		t.Error("unrecognized error must yield no icon")
	}
}

func TestIconPNGEncodes(t *testing.T) {
	c := NewCompositor(DefaultLoader())
	ic := c.Icon(powerinfo.NewDischarging(42))
	if ic == nil {
		t.Fatal("expected an icon")
	}
	b, err := ic.PNG()
	if err != nil {
		t.Fatalf("PNG() returned error: %v", err)
	}
	if len(b) == 0 {
		t.Error("PNG() returned empty bytes")
	}
}
