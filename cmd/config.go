package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/config"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			path := cfgPath
			if path == "" {
				path = config.Path()
			}
			fmt.Printf("  %s\n\n", ui.Subtle.Sprintf("# %s", path))
			if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(config.Path())
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the default config file if none exists",
			Run: func(cmd *cobra.Command, args []string) {
				if err := config.EnsureExists(); err != nil {
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
				ui.Good.Printf("  %s %s\n", ui.StatusIcon(true), config.Path())
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate the config file",
			Run: func(cmd *cobra.Command, args []string) {
				err := cfgErr
				if err == nil {
					err = cfg.Validate()
				}
				if err != nil {
					ui.Bad.Printf("  %s %v\n", ui.StatusIcon(false), err)
					os.Exit(1)
				}
				ui.Good.Printf("  %s config ok\n", ui.StatusIcon(true))
			},
		},
	)
	return cmd
}
