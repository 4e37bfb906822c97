// Package config reads the d3dframe settings file and persists the last
// frame dialog input between runs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/helpers/matter"
)

// AppName names the settings directory.
const AppName = "d3dframe"

const (
	configFile = "config.toml"
	inputFile  = "input.toml"
)

// Config holds the settings read from config.toml.
type Config struct {
	// Catalog CSV paths. Empty paths use the built in tables.
	Catalog struct {
		Pipes   string `toml:"pipes"`
		Corners string `toml:"corners"`
	} `toml:"catalog"`
	// OutputDir receives STL and PNG files written without an explicit path.
	OutputDir string `toml:"output_dir"`
	// Segments is the number of facets around every circle.
	Segments int `toml:"segments"`
	// Material names a print material for fitting compensation. Empty means
	// no compensation.
	Material string `toml:"material"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{OutputDir: ".", Segments: 32}
}

// Dir returns the settings directory, i.e. ~/.config/d3dframe on Linux.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// Load reads the configuration at path on top of Default. A missing file
// is not an error.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Default(), fmt.Errorf("config %s: unknown keys %v", path, keys)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the segment count and material name.
func (c Config) Validate() error {
	if c.Segments < 3 {
		return fmt.Errorf("segments must be 3 or more, got %d", c.Segments)
	}
	if _, err := c.PrintMaterial(); err != nil {
		return err
	}
	return nil
}

// PrintMaterial returns the configured material or nil when none is set.
func (c Config) PrintMaterial() (*matter.ViscousMaterial, error) {
	if c.Material == "" {
		return nil, nil
	}
	m, ok := matter.Lookup(c.Material)
	if !ok {
		return nil, fmt.Errorf("unknown material %q", c.Material)
	}
	return &m, nil
}

// Path returns the default config.toml path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Input is the frame dialog input. Lengths are kept as typed, i.e. "12 in".
type Input struct {
	LX          string
	LY          string
	LZ          string
	PipeName    string
	CornerName  string
	CreateSolid bool
}

// DefaultInput returns the dialog input shown on first use. Both parts are
// in the built in catalogs.
func DefaultInput() Input {
	return Input{
		LX: "12 in", LY: "8 in", LZ: "4 in",
		PipeName:    "NPS 1 in PVC SCH 40",
		CornerName:  "F0013WE",
		CreateSolid: true,
	}
}

// Spans parses the three span lengths to millimetres.
func (in Input) Spans() (lx, ly, lz float64, err error) {
	for _, f := range []struct {
		name string
		text string
		dst  *float64
	}{{"LX", in.LX, &lx}, {"LY", in.LY, &ly}, {"LZ", in.LZ, &lz}} {
		if *f.dst, err = frame.ParseQuantity(f.text); err != nil {
			return 0, 0, 0, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return lx, ly, lz, nil
}

// Validate checks the spans parse and both part names are entered.
func (in Input) Validate() error {
	if _, _, _, err := in.Spans(); err != nil {
		return err
	}
	if strings.TrimSpace(in.PipeName) == "" {
		return errors.New("enter pipe name")
	}
	if strings.TrimSpace(in.CornerName) == "" {
		return errors.New("enter corner name")
	}
	return nil
}

// InputPath returns the default input.toml path.
func InputPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, inputFile), nil
}

// LoadInput restores the input saved at path. Fields missing from the
// file keep their DefaultInput values. A missing file is not an error.
func LoadInput(path string) (Input, error) {
	in := DefaultInput()
	_, err := toml.DecodeFile(path, &in)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultInput(), nil
	}
	if err != nil {
		return DefaultInput(), fmt.Errorf("input %s: %w", path, err)
	}
	return in, nil
}

// SaveInput writes in to path, creating the directory as needed.
func SaveInput(path string, in Input) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(fp).Encode(in); err != nil {
		fp.Close()
		return fmt.Errorf("input %s: %w", path, err)
	}
	return fp.Close()
}
