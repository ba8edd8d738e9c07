package linework

import (
	"image"
	"testing"
)

func TestRenderSegmentsCoverage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	s := mustSegment(t, Pt(2, 8), Pt(14, 8), 3, CapFull)
	s.Color = Red
	RenderSegments(img, []Segment{s}, DefaultAABorder)

	// Deep inside the stroke: fully covered, opaque red.
	c := img.RGBAAt(8, 8)
	if c.A != 255 || c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("interior pixel = %+v, want opaque red", c)
	}
	// Far outside: untouched.
	if c := img.RGBAAt(8, 0); c.A != 0 {
		t.Errorf("exterior pixel alpha = %d, want 0", c.A)
	}
	// In the antialiasing fringe at the stroke edge: partial coverage.
	// The boundary is at y = 8 +- 3; pixel row 10 samples y = 10.5, half a
	// pixel inside the ramp.
	edge := img.RGBAAt(8, 10)
	if edge.A == 0 || edge.A == 255 {
		t.Errorf("fringe pixel alpha = %d, want partial", edge.A)
	}
}

func TestRenderSegmentsCutStart(t *testing.T) {
	const thickness = 3
	full := image.NewRGBA(image.Rect(0, 0, 16, 16))
	cut := image.NewRGBA(image.Rect(0, 0, 16, 16))

	sFull := mustSegment(t, Pt(8, 8), Pt(14, 8), thickness, CapFull)
	sFull.Color = White
	sCut := mustSegment(t, Pt(8, 8), Pt(14, 8), thickness, CapCutStart)
	sCut.Color = White

	RenderSegments(full, []Segment{sFull}, DefaultAABorder)
	RenderSegments(cut, []Segment{sCut}, DefaultAABorder)

	// Pixel (5, 8) lies in the start-side cap overhang: covered by the full
	// cap, discarded by the cut.
	if c := full.RGBAAt(5, 8); c.A == 0 {
		t.Error("full cap: overhang pixel not covered")
	}
	if c := cut.RGBAAt(5, 8); c.A != 0 {
		t.Errorf("cut cap: overhang pixel alpha = %d, want 0", c.A)
	}

	// The segment body past the start point is identical in both.
	for x := 9; x <= 13; x++ {
		if full.RGBAAt(x, 8) != cut.RGBAAt(x, 8) {
			t.Errorf("body pixel (%d, 8) differs between cap kinds", x)
		}
	}
}

func TestRenderSegmentsJoint(t *testing.T) {
	// Two collinear segments sharing a joint, the second with its start cap
	// cut. Along the centerline the composite must match a single segment
	// spanning both: full opacity, no visible seam.
	joint := image.NewRGBA(image.Rect(0, 0, 16, 16))
	single := image.NewRGBA(image.Rect(0, 0, 16, 16))

	a := mustSegment(t, Pt(2, 8), Pt(8, 8), 3, CapFull)
	a.Color = White
	b := mustSegment(t, Pt(8, 8), Pt(14, 8), 3, CapCutStart)
	b.Color = White
	whole := mustSegment(t, Pt(2, 8), Pt(14, 8), 3, CapFull)
	whole.Color = White

	RenderSegments(joint, []Segment{a, b}, DefaultAABorder)
	RenderSegments(single, []Segment{whole}, DefaultAABorder)

	for x := 2; x <= 13; x++ {
		got := joint.RGBAAt(x, 8)
		want := single.RGBAAt(x, 8)
		if got != want {
			t.Errorf("centerline pixel (%d, 8) = %+v, single segment %+v", x, got, want)
		}
	}
	// In particular the joint itself is opaque, not double-blended.
	if c := joint.RGBAAt(8, 8); c.A != 255 {
		t.Errorf("joint alpha = %d, want 255", c.A)
	}
}

func TestRenderSegmentsDrawOrder(t *testing.T) {
	// Later segments composite over earlier ones.
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	under := mustSegment(t, Pt(2, 8), Pt(14, 8), 3, CapFull)
	under.Color = Red
	over := mustSegment(t, Pt(8, 2), Pt(8, 14), 3, CapFull)
	over.Color = Blue

	RenderSegments(img, []Segment{under, over}, DefaultAABorder)

	c := img.RGBAAt(8, 8)
	if c.B != 255 || c.R != 0 {
		t.Errorf("overlap pixel = %+v, want opaque blue on top", c)
	}
}

func TestRenderCurves(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	q := mustCurve(t, Pt(2, 12), Pt(8, 2), Pt(14, 12))
	RenderCurves(img, []CurveStroke{{Curve: q, Thickness: 2, Color: Green}}, DefaultAABorder)

	// The curve apex passes through (8, 7); a pixel there is fully inside
	// the stroke.
	c := img.RGBAAt(8, 7)
	if c.A != 255 || c.G != 255 {
		t.Errorf("on-curve pixel = %+v, want opaque green", c)
	}
	// Corners are far from the stroke.
	if c := img.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("corner pixel alpha = %d, want 0", c.A)
	}
	if c := img.RGBAAt(15, 0); c.A != 0 {
		t.Errorf("corner pixel alpha = %d, want 0", c.A)
	}
}

func TestRenderClipsToImage(t *testing.T) {
	// A stroke extending past the image bounds must not panic and must
	// paint the visible part.
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	s := mustSegment(t, Pt(-10, 4), Pt(20, 4), 2, CapFull)
	s.Color = Red
	RenderSegments(img, []Segment{s}, DefaultAABorder)

	if c := img.RGBAAt(4, 4); c.A != 255 {
		t.Errorf("visible stroke pixel alpha = %d, want 255", c.A)
	}
}
