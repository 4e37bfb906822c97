package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ose-d3d/frame/catalog"
)

func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "catalog [pipes|corners]",
		Short:     "List the pipe and corner catalogs",
		ValidArgs: []string{"pipes", "corners"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipes, corners, err := c.catalogs()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			show := "all"
			if len(args) == 1 {
				show = args[0]
			}
			if show != "corners" {
				printCatalog(out, "Pipes", pipes)
			}
			if show != "pipes" {
				printCatalog(out, "Corners", corners)
			}
			return nil
		},
	}
}

func printCatalog(w io.Writer, title string, t *catalog.Table) {
	tbl := newTable(t.Columns()...)
	for _, row := range t.Rows() {
		cells := make([]string, len(t.Columns()))
		for i, col := range t.Columns() {
			cells[i] = row[col]
		}
		tbl.Row(cells...)
	}
	fmt.Fprintln(w, StyleTitle.Render(title)+" "+StyleDim.Render(fmt.Sprintf("(%d parts)", t.Len())))
	fmt.Fprintln(w, tbl.Render())
}
