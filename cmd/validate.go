package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/batch"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/logging"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
)

func validateCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:     "validate <file>...",
		Aliases: []string{"check"},
		Short:   "Validate graph documents",
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			ui.Banner("validate")
			results := batch.Run(ctx, batch.FileTasks(args), jobs, os.Stdout)
			for _, r := range results {
				if r.Err != nil {
					logger.Debug("graph invalid", logging.FieldFile, r.Name, logging.Err(r.Err))
				}
			}

			failed := batch.Failed(results)
			fmt.Println()
			if failed > 0 {
				ui.Bad.Printf("  %d of %d graphs failed validation\n", failed, len(results))
				os.Exit(1)
			}
			ui.Good.Printf("  %s %d graphs valid\n", ui.StatusIcon(true), len(results))
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Files to validate concurrently")
	return cmd
}
