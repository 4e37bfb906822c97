// Package preview draws triangle models to PNG images.
package preview

import (
	"errors"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/ose-d3d/frame/internal/d3"
	"github.com/ose-d3d/frame/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera and image. The model is fitted into a bi-unit
// cube centered at the origin before drawing.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// vertical field of view in degrees
	FovY float64
	// output width and height in pixels
	Width, Height int
	// supersampling factor
	Scale int
	// hex colors
	Color, Background string
}

// DefaultView looks at the model from the first octant with Z up.
var DefaultView = View{
	Up:         r3.Vec{Z: 1},
	Eye:        r3.Vec{X: 2.2, Y: -3, Z: 1.8},
	Near:       1,
	Far:        10,
	FovY:       30,
	Width:      960,
	Height:     540,
	Scale:      2,
	Color:      "#468966",
	Background: "#FFF8E3",
}

// Render draws model as seen from v and writes it to w as PNG.
func Render(model []mesh.Triangle3, v View, w io.Writer) error {
	if len(model) == 0 {
		return errors.New("preview: empty model")
	}
	if v.Width <= 0 || v.Height <= 0 {
		return errors.New("preview: image size must be positive")
	}
	if v.Scale < 1 {
		v.Scale = 1
	}
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(vec(t[0]), vec(t[1]), vec(t[2]))
	}
	m := fauxgl.NewTriangleMesh(tris)
	m.BiUnitCube()

	var (
		eye    = vec(v.Eye)
		center = vec(v.LookAt)
		up     = vec(v.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	if d3.EqualWithin(r3.Cross(r3.Sub(v.Eye, v.LookAt), v.Up), r3.Vec{}, 1e-12) {
		return errors.New("preview: up direction parallel to view direction")
	}
	ctx := fauxgl.NewContext(v.Width*v.Scale, v.Height*v.Scale)
	ctx.ClearColorBufferWith(fauxgl.HexColor(v.Background))
	aspect := float64(v.Width) / float64(v.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(v.FovY, aspect, v.Near, v.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(v.Color)
	ctx.Shader = shader
	ctx.DrawMesh(m)
	// downsample image for antialiasing
	img := resize.Resize(uint(v.Width), uint(v.Height), ctx.Image(), resize.Bilinear)
	return png.Encode(w, img)
}

func vec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
