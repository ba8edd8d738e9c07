package linework_test

import (
	"fmt"
	"image"

	"github.com/gogpu/linework"
)

func ExampleSegmentBatch_AddPolyline() {
	var batch linework.SegmentBatch
	points := []linework.Point{
		linework.Pt(10, 10),
		linework.Pt(90, 10),
		linework.Pt(90, 90),
	}
	if err := batch.AddPolyline(points, 2, linework.Blue); err != nil {
		fmt.Println("pack:", err)
		return
	}
	fmt.Println(batch.Len(), "segments,", len(batch.Vertices()), "vertices")
	// Output: 2 segments, 8 vertices
}

func Example_softwareRender() {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))

	seg, err := linework.NewSegment(linework.Pt(4, 8), linework.Pt(28, 8), 2, linework.Red, linework.CapFull)
	if err != nil {
		fmt.Println("segment:", err)
		return
	}
	linework.RenderSegments(img, []linework.Segment{seg}, linework.DefaultAABorder)

	fmt.Println(img.RGBAAt(16, 8).A == 255)
	// Output: true
}
