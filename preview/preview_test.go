package preview_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/mesh"
	"github.com/ose-d3d/frame/preview"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

func frameModel(t *testing.T) []mesh.Triangle3 {
	t.Helper()
	a, err := frame.Layout(frame.NewBox())
	if err != nil {
		t.Fatal(err)
	}
	r, err := mesh.NewAssemblyRenderer(a, mesh.Options{Segments: 12, Solid: true})
	if err != nil {
		t.Fatal(err)
	}
	model, err := mesh.RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestRender(t *testing.T) {
	model := frameModel(t)
	view := preview.DefaultView
	view.Width, view.Height, view.Scale = 320, 180, 1
	var b1, b2 bytes.Buffer
	if err := preview.Render(model, view, &b1); err != nil {
		t.Fatal(err)
	}
	if err := preview.Render(model, view, &b2); err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1.Bytes(), b2.Bytes(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("rendering the same model twice gave different images")
	}

	img, err := png.Decode(bytes.NewReader(b1.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 180 {
		t.Fatalf("image size %v", bounds)
	}
	bg := img.At(0, 0)
	drawn := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.At(x, y) != bg {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("no model pixels drawn")
	}
}

func TestRenderErrors(t *testing.T) {
	var b bytes.Buffer
	if err := preview.Render(nil, preview.DefaultView, &b); err == nil {
		t.Error("expected error for empty model")
	}
	model := []mesh.Triangle3{{{}, {X: 1}, {Y: 1}}}
	view := preview.DefaultView
	view.Width = 0
	if err := preview.Render(model, view, &b); err == nil {
		t.Error("expected error for zero width")
	}
	view = preview.DefaultView
	view.Eye = r3.Vec{Z: 3}
	if err := preview.Render(model, view, &b); err == nil {
		t.Error("expected error looking along the up direction")
	}
}
