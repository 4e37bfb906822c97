package catalog_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/catalog"
)

const pipeCSV = `Name,OD,ID
# comment lines are skipped
small,20 mm,16 mm
NPS 1 in PVC SCH 40, 1.315 in, 1.049 in
`

func TestLoad(t *testing.T) {
	tbl, err := catalog.Load(strings.NewReader(pipeCSV), catalog.PipeColumns...)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("got %d rows, want 2", tbl.Len())
	}
	if got := tbl.PartName(1); got != "NPS 1 in PVC SCH 40" {
		t.Errorf("PartName(1) = %q", got)
	}
	if got := strings.Join(tbl.Names(), "|"); got != "small|NPS 1 in PVC SCH 40" {
		t.Errorf("Names() = %q", got)
	}
	row, ok := tbl.FindPart("small")
	if !ok || row["OD"] != "20 mm" {
		t.Errorf("FindPart(small) = %v, %v", row, ok)
	}
	if _, ok := tbl.FindPart("missing"); ok {
		t.Error("found part that does not exist")
	}
	p, err := tbl.Pipe("NPS 1 in PVC SCH 40")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.OD-33.401) > 1e-9 || math.Abs(p.ID-26.6446) > 1e-9 {
		t.Errorf("got OD=%g ID=%g", p.OD, p.ID)
	}
	if math.Abs(p.Thk()-(33.401-26.6446)/2) > 1e-9 {
		t.Errorf("got Thk=%g", p.Thk())
	}
}

func TestLoadByteOrderMark(t *testing.T) {
	tbl, err := catalog.Load(strings.NewReader("\ufeff"+pipeCSV), catalog.PipeColumns...)
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Columns()[0]; got != catalog.NameColumn {
		t.Errorf("first column %q, want %q", got, catalog.NameColumn)
	}
	if _, err := tbl.Pipe("small"); err != nil {
		t.Error(err)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"no name column", "OD,ID\n1,2\n"},
		{"missing dimension", "Name,OD\na,1\n"},
		{"duplicate", "Name,OD,ID\na,2,1\na,3,2\n"},
		{"empty name", "Name,OD,ID\n,2,1\n"},
		{"ragged", "Name,OD,ID\na,2\n"},
	} {
		if _, err := catalog.Load(strings.NewReader(test.csv), catalog.PipeColumns...); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestPartNotFound(t *testing.T) {
	tbl, err := catalog.Load(strings.NewReader(pipeCSV), catalog.PipeColumns...)
	if err != nil {
		t.Fatal(err)
	}
	_, err = tbl.Pipe("nope")
	if !errors.Is(err, catalog.ErrPartNotFound) {
		t.Errorf("got %v, want ErrPartNotFound", err)
	}
	if err != nil && !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("error %q does not name the part", err)
	}
}

func TestBadCell(t *testing.T) {
	tbl, err := catalog.Load(strings.NewReader("Name,OD,ID\na,wide,1\n"), catalog.PipeColumns...)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Pipe("a"); !errors.Is(err, frame.ErrBadQuantity) {
		t.Errorf("got %v, want ErrBadQuantity", err)
	}
}

func TestDefaultTables(t *testing.T) {
	pipes, err := catalog.DefaultPipes()
	if err != nil {
		t.Fatal(err)
	}
	corners, err := catalog.DefaultCorners()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range pipes.Names() {
		p, err := pipes.Pipe(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if p.Thk() <= 0 {
			t.Errorf("%s: wall thickness %g", name, p.Thk())
		}
	}
	for _, name := range corners.Names() {
		c, err := corners.Corner(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if err := c.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestBoxFromTable(t *testing.T) {
	pipes, err := catalog.DefaultPipes()
	if err != nil {
		t.Fatal(err)
	}
	corners, err := catalog.DefaultCorners()
	if err != nil {
		t.Fatal(err)
	}
	bt := catalog.NewBoxFromTable(pipes, corners)
	b, err := bt.Box("NPS 1 in PVC SCH 40", "F0013WE")
	if err != nil {
		t.Fatal(err)
	}
	if b.G != 25.4 {
		t.Errorf("gap %g, want corner G 25.4", b.G)
	}
	if b.POD != b.Corner.POD {
		t.Errorf("pipe OD %g does not fit socket %g", b.POD, b.Corner.POD)
	}
	if math.Abs(b.Thk-(b.POD-b.PID)/2) > 1e-9 {
		t.Errorf("Thk %g from OD %g ID %g", b.Thk, b.POD, b.PID)
	}

	doc := frame.NewAssembly()
	if err := bt.Create(doc, "NPS 1 in PVC SCH 40", "F0013WE"); err != nil {
		t.Fatal(err)
	}
	if n := len(doc.Objects()); n != 20 {
		t.Errorf("got %d objects, want 20", n)
	}

	for _, names := range [][2]string{{"NPS 9 in", "F0013WE"}, {"NPS 1 in PVC SCH 40", "F9999"}} {
		doc := frame.NewAssembly()
		err := bt.Create(doc, names[0], names[1])
		if !errors.Is(err, catalog.ErrPartNotFound) {
			t.Errorf("%v: got %v, want ErrPartNotFound", names, err)
		}
		if len(doc.Objects()) != 0 {
			t.Errorf("%v: objects created after lookup miss", names)
		}
	}

	bt.LZ = 2 * 25.4
	if err := bt.Create(frame.NewAssembly(), "NPS 1 in PVC SCH 40", "F0013WE"); !errors.Is(err, frame.ErrImplausibleDimensions) {
		t.Errorf("got %v, want ErrImplausibleDimensions", err)
	}
}
