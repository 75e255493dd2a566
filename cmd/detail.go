package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/view"
)

func detailCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "detail <file> [id]",
		Aliases: []string{"show"},
		Short:   "Print the detail panel for a node",
		Args:    cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			c := mustLoadView(args[0])
			if len(args) == 2 && !c.Select(args[1]) {
				ui.Bad.Printf("  no node with id %q\n", args[1])
				os.Exit(1)
			}
			printDetail(c.Detail())
		},
	}
}

func printDetail(d view.Detail) {
	if d.Image != "" {
		fmt.Printf("  %s %s\n", ui.Subtle.Sprint("[img]"), d.Image)
	}
	if d.Empty {
		fmt.Printf("  %s\n", ui.Subtle.Sprint(d.Text()))
		return
	}
	for _, line := range d.Lines {
		fmt.Printf("  %s\n", line)
	}
}
