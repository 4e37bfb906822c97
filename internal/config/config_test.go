package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ose-d3d/frame/helpers/matter"
)

func TestLoadMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("got %+v, want defaults", c)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
output_dir = "/tmp/frames"
segments = 48
material = "pla"

[catalog]
pipes = "pipes.csv"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.OutputDir != "/tmp/frames" || c.Segments != 48 || c.Catalog.Pipes != "pipes.csv" || c.Catalog.Corners != "" {
		t.Errorf("got %+v", c)
	}
	m, err := c.PrintMaterial()
	if err != nil || m == nil || *m != matter.PLA {
		t.Errorf("got material %v, %v", m, err)
	}
}

func TestLoadBroken(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":      "segments = [",
		"unknown key": "segmnets = 12",
		"segments":    "segments = 2",
		"material":    `material = "wood"`,
	} {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if err == nil {
			t.Errorf("%s: expected error", name)
		}
		if c != Default() {
			t.Errorf("%s: broken config must fall back to defaults, got %+v", name, c)
		}
	}
}

func TestInputRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppName, "input.toml")
	in, err := LoadInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if in != DefaultInput() {
		t.Errorf("got %+v, want defaults", in)
	}
	in = Input{LX: "30 cm", LY: "20 cm", LZ: "25 in", PipeName: "NPS 1 in PVC SCH 40", CornerName: "F0013WE"}
	if err := SaveInput(path, in); err != nil {
		t.Fatal(err)
	}
	got, err := LoadInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("got %+v, want %+v", got, in)
	}
	lx, ly, lz, err := got.Spans()
	if err != nil {
		t.Fatal(err)
	}
	if lx != 300 || ly != 200 || math.Abs(lz-635) > 1e-9 {
		t.Errorf("spans %g %g %g", lx, ly, lz)
	}
}

func TestInputPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.toml")
	if err := os.WriteFile(path, []byte(`PipeName = "a"`), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := LoadInput(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultInput()
	want.PipeName = "a"
	if in != want {
		t.Errorf("got %+v, want %+v", in, want)
	}
}

func TestInputValidate(t *testing.T) {
	in := DefaultInput()
	if err := in.Validate(); err != nil {
		t.Error(err)
	}
	in.PipeName = " "
	if err := in.Validate(); err == nil || err.Error() != "enter pipe name" {
		t.Errorf("got %v, want enter pipe name", err)
	}
	in.PipeName, in.CornerName = "p", ""
	if err := in.Validate(); err == nil || err.Error() != "enter corner name" {
		t.Errorf("got %v, want enter corner name", err)
	}
	in.CornerName = "c"
	in.LY = "eight"
	if err := in.Validate(); err == nil {
		t.Error("expected error for bad span")
	}
}
