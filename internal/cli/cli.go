// Package cli implements the d3dframe command-line interface.
//
// The commands build a cube frame of PVC pipes joined by three way corner
// fittings, print its cut list and write it as STL or PNG.
//
// # Commands
//
//   - box: frame from explicit dimensions
//   - frame: frame from pipe and corner catalog parts
//   - catalog: list catalog tables
//   - dialog: interactive frame input, remembered between runs
//   - preview: PNG picture of a frame
//   - serve: HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/catalog"
	"github.com/ose-d3d/frame/internal/config"
	"github.com/ose-d3d/frame/mesh"
)

const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// version is set at build time with -ldflags.
var version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// ConfigPath overrides the default config.toml location.
	ConfigPath string
	// InputPath overrides the default input.toml location.
	InputPath string
	cfg       *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "d3dframe builds PVC pipe cube frames",
		Long:          `d3dframe lays out a rectangular frame of twelve pipes joined by eight three way corner fittings, prints the cut list and exports STL models.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default is the user config dir)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	}

	root.AddCommand(c.boxCommand())
	root.AddCommand(c.frameCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.dialogCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	return root
}

// settings loads the config once. Broken settings are logged and the
// defaults used instead.
func (c *CLI) settings() config.Config {
	if c.cfg != nil {
		return *c.cfg
	}
	cfg := config.Default()
	path := c.ConfigPath
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			c.Logger.Warn("no config directory", "err", err)
			c.cfg = &cfg
			return cfg
		}
	}
	loaded, err := config.Load(path)
	if err != nil {
		c.Logger.Warn("ignoring broken config", "err", err)
	} else {
		cfg = loaded
		c.Logger.Debug("config loaded", "path", path)
	}
	c.cfg = &cfg
	return cfg
}

func (c *CLI) inputPath() (string, error) {
	if c.InputPath != "" {
		return c.InputPath, nil
	}
	return config.InputPath()
}

// catalogs loads the pipe and corner tables from the configured paths or
// the built in tables.
func (c *CLI) catalogs() (pipes, corners *catalog.Table, err error) {
	cfg := c.settings()
	load := func(path string, builtin func() (*catalog.Table, error), cols []string) (*catalog.Table, error) {
		if path == "" {
			return builtin()
		}
		c.Logger.Debug("loading catalog", "path", path)
		return catalog.LoadFile(path, cols...)
	}
	if pipes, err = load(cfg.Catalog.Pipes, catalog.DefaultPipes, catalog.PipeColumns); err != nil {
		return nil, nil, err
	}
	if corners, err = load(cfg.Catalog.Corners, catalog.DefaultCorners, catalog.CornerColumns); err != nil {
		return nil, nil, err
	}
	return pipes, corners, nil
}

// meshOptions returns tessellation options from the config. segments and
// solid override the config when set.
func (c *CLI) meshOptions(segments int, solid bool) (mesh.Options, error) {
	cfg := c.settings()
	opts := mesh.Options{Segments: cfg.Segments, Solid: solid}
	if segments > 0 {
		opts.Segments = segments
	}
	m, err := cfg.PrintMaterial()
	if err != nil {
		return opts, err
	}
	opts.Material = m
	return opts, nil
}

// outputPath places relative file names in the configured output dir.
func (c *CLI) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.settings().OutputDir, name)
}

// frameRequest is a catalog frame request shared by the frame, dialog and
// serve commands.
type frameRequest struct {
	LX, LY, LZ float64
	Pipe       string
	Corner     string
}

// buildFrame resolves the catalog parts of req and lays out the frame.
func (c *CLI) buildFrame(req frameRequest) (*frame.Assembly, error) {
	pipes, corners, err := c.catalogs()
	if err != nil {
		return nil, err
	}
	bt := catalog.NewBoxFromTable(pipes, corners)
	bt.LX, bt.LY, bt.LZ = req.LX, req.LY, req.LZ
	a := frame.NewAssembly()
	if err := bt.Create(a, req.Pipe, req.Corner); err != nil {
		return nil, err
	}
	return a, nil
}

// inputFrame lays out the frame described by dialog style input. Catalog
// misses are logged before the error is returned.
func (c *CLI) inputFrame(in config.Input) (*frame.Assembly, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	lx, ly, lz, err := in.Spans()
	if err != nil {
		return nil, err
	}
	a, err := c.buildFrame(frameRequest{LX: lx, LY: ly, LZ: lz, Pipe: in.PipeName, Corner: in.CornerName})
	if errors.Is(err, catalog.ErrPartNotFound) {
		c.Logger.Error("part not found", "pipe", in.PipeName, "corner", in.CornerName)
	}
	return a, err
}

func quantityFlag(s string) (float64, error) {
	v, err := frame.ParseQuantity(s)
	if err != nil {
		return 0, fmt.Errorf("invalid length: %w", err)
	}
	return v, nil
}
