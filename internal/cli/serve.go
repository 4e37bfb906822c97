package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ose-d3d/frame/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		segments int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve frame layouts and STL models over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipes, corners, err := c.catalogs()
			if err != nil {
				return err
			}
			opts, err := c.meshOptions(segments, true)
			if err != nil {
				return err
			}
			srv := server.New(c.Logger, pipes, corners, opts)
			err = srv.ListenAndServe(cmd.Context(), addr)
			if errors.Is(err, context.Canceled) {
				c.Logger.Info("server stopped")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&segments, "segments", 0, "default facets around every circle (default from config)")
	return cmd
}
