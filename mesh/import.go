package mesh

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ose-d3d/frame"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadPart reads a binary STL part. Facets whose stored normal disagrees
// with their winding are kept as wound.
func ReadPart(r io.Reader, source string) (frame.Part, error) {
	model, err := ReadSTL(r)
	if err != nil && !errors.Is(err, ErrNormalMismatch) {
		return frame.Part{}, fmt.Errorf("%s: %w", source, err)
	}
	p := frame.Part{Source: source, Facets: make([][3]r3.Vec, len(model))}
	for i, t := range model {
		p.Facets[i] = t
	}
	return p, nil
}

// ImportPart reads the STL file at path and adds it to a at placement pl.
// The part is labelled after the file name without extension.
func ImportPart(a *frame.Assembly, path string, pl frame.Placement) (*frame.Object, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	p, err := ReadPart(fp, path)
	if err != nil {
		return nil, err
	}
	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return a.AddPart(label, p, pl), nil
}
